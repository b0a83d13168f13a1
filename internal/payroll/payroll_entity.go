package payroll

import (
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/money"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// transitions lists the moves a period may make. Completed is terminal; a
// failed period may go back to processing for a rerun.
var transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
	StatusFailed:     {StatusProcessing},
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PayrollPeriod struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PeriodStart time.Time `gorm:"type:date;not null;index"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:pending;index"`
	CreatedBy   string    `gorm:"type:varchar(64)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PayrollPeriod) TableName() string { return "payroll_periods" }

type PayrollItem struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	PeriodID           uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID         uuid.UUID `gorm:"type:uuid;not null;index"`
	BaseSalary         money.Money
	OvertimeHours      float64
	OvertimeRate       money.Money
	OvertimePay        money.Money
	Allowances         money.Money
	Bonuses            money.Money
	TaxDeduction       money.Money
	InsuranceDeduction money.Money
	OtherDeductions    money.Money
	GrossPay           money.Money
	NetPay             money.Money
	Status             string `gorm:"type:varchar(20);not null;default:pending"`
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (PayrollItem) TableName() string { return "payroll_items" }

// PayrollHistoryItem is an item joined with its period and employee.
type PayrollHistoryItem struct {
	PayrollItem `gorm:"embedded"`
	PeriodStart time.Time
	PeriodEnd   time.Time
	FirstName   string
	LastName    string
	Department  string
	Position    string
}

const (
	PeriodFilterAll       = "all"
	PeriodFilterThisMonth = "thisMonth"
	PeriodFilterLastMonth = "lastMonth"
)

var historySortColumns = map[string]string{
	"created_at":   "pi.created_at",
	"period_start": "pp.period_start",
	"gross_pay":    "pi.gross_pay",
	"net_pay":      "pi.net_pay",
}
