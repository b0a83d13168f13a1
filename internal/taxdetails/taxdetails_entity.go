package taxdetails

import (
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/money"

	"github.com/google/uuid"
)

const (
	FilingSingle          = "single"
	FilingMarriedJoint    = "married_joint"
	FilingMarriedSeparate = "married_separate"
	FilingHeadOfHousehold = "head_household"
)

type EmployeeTaxDetails struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_tax_year"`
	TaxYear               int       `gorm:"not null;uniqueIndex:uq_employee_tax_year"`
	FilingStatus          string    `gorm:"type:varchar(20);not null"`
	Allowances            int       `gorm:"not null;default:0"`
	AdditionalWithholding money.Money
	StateCode             *string
	Locality              *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (EmployeeTaxDetails) TableName() string {
	return "employee_tax_details"
}
