package employee

import (
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/money"

	"github.com/google/uuid"
)

const (
	PayPeriodMonthly  = "MONTHLY"
	PayPeriodBiWeekly = "BI-WEEKLY"
	PayPeriodWeekly   = "WEEKLY"
)

type Employee struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName          string    `gorm:"not null"`
	LastName           string    `gorm:"not null"`
	Email              string    `gorm:"uniqueIndex:uq_employee_email;not null"`
	Phone              string
	Department         string    `gorm:"index"`
	Position           string
	HireDate           time.Time `gorm:"type:date"`
	GrossSalary        money.Money
	PayPeriod          string `gorm:"default:MONTHLY"`
	TaxDeduction       money.Money
	InsuranceDeduction money.Money
	OtherDeductions    money.Money
	NetSalary          money.Money
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// ComputeNetSalary is gross minus the three standing deductions. It is not floored.
func ComputeNetSalary(gross, tax, insurance, other money.Money) money.Money {
	return gross - tax - insurance - other
}
