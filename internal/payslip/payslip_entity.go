package payslip

import (
	"strings"
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/money"

	"github.com/google/uuid"
)

const (
	// AllowancePercent and DeductionPercent are applied to the employee's gross salary.
	AllowancePercent = 10
	DeductionPercent = 15

	NumberFormat = "PS-%06d"
)

type Payslip struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayslipNumber string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Month         string    `gorm:"type:varchar(12);not null"`
	Year          int       `gorm:"not null"`
	BasicSalary   money.Money
	Allowances    money.Money
	Deductions    money.Money
	NetSalary     money.Money
	GeneratedDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Payslip) TableName() string { return "payslips" }

type Amounts struct {
	Basic      money.Money
	Allowances money.Money
	Deductions money.Money
	Net        money.Money
}

func ComputeAmounts(basic money.Money) Amounts {
	allowances := basic.Percent(AllowancePercent)
	deductions := basic.Percent(DeductionPercent)
	return Amounts{
		Basic:      basic,
		Allowances: allowances,
		Deductions: deductions,
		Net:        basic + allowances - deductions,
	}
}

// ParseMonth accepts a full English month name in any case and returns its
// canonical form ("October").
func ParseMonth(v string) (string, bool) {
	v = strings.TrimSpace(v)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(v, m.String()) {
			return m.String(), true
		}
	}
	return "", false
}
