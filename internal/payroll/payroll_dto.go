package payroll

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/money"
)

// CreatePayrollRequest creates one period with one item. Amounts are coerced:
// omitted, null or non-numeric values are zero.
type CreatePayrollRequest struct {
	EmployeeID         string      `json:"employee_id" binding:"required,uuid"`
	PeriodStart        string      `json:"period_start" binding:"required"`
	PeriodEnd          string      `json:"period_end" binding:"required"`
	BaseSalary         money.Money `json:"base_salary"`
	OvertimeHours      float64     `json:"overtime_hours"`
	OvertimeRate       money.Money `json:"overtime_rate"`
	Allowances         money.Money `json:"allowances"`
	Bonuses            money.Money `json:"bonuses"`
	TaxDeduction       money.Money `json:"tax_deduction"`
	InsuranceDeduction money.Money `json:"insurance_deduction"`
	OtherDeductions    money.Money `json:"other_deductions"`
	Notes              string      `json:"notes"`
}

var payrollAmountFields = []string{
	"base_salary",
	"overtime_hours",
	"overtime_rate",
	"allowances",
	"bonuses",
	"tax_deduction",
	"insurance_deduction",
	"other_deductions",
}

// UnmarshalJSON rewrites every amount field to a plain number before decoding.
// Amounts still pass the money range check.
func (r *CreatePayrollRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, field := range payrollAmountFields {
		v, ok := raw[field]
		if !ok {
			continue
		}
		raw[field] = json.RawMessage(strconv.FormatFloat(money.Coerce(v), 'g', -1, 64))
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	type plain CreatePayrollRequest
	return json.Unmarshal(normalized, (*plain)(r))
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=processing completed failed"`
}

type HistoryFilter struct {
	EmployeeID string `form:"employee_id"`
	Search     string `form:"q"`
	Period     string `form:"period"`
	SortBy     string `form:"sort_by"`
	SortDir    string `form:"sort_dir"`
}

type PeriodResponse struct {
	ID          string    `json:"id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type ItemResponse struct {
	ID                 string      `json:"id"`
	PeriodID           string      `json:"period_id"`
	EmployeeID         string      `json:"employee_id"`
	BaseSalary         money.Money `json:"base_salary"`
	OvertimeHours      float64     `json:"overtime_hours"`
	OvertimeRate       money.Money `json:"overtime_rate"`
	OvertimePay        money.Money `json:"overtime_pay"`
	Allowances         money.Money `json:"allowances"`
	Bonuses            money.Money `json:"bonuses"`
	TaxDeduction       money.Money `json:"tax_deduction"`
	InsuranceDeduction money.Money `json:"insurance_deduction"`
	OtherDeductions    money.Money `json:"other_deductions"`
	GrossPay           money.Money `json:"gross_pay"`
	NetPay             money.Money `json:"net_pay"`
	Status             string      `json:"status"`
	Notes              string      `json:"notes"`
	CreatedAt          time.Time   `json:"created_at"`
}

type CreatePayrollResponse struct {
	Period PeriodResponse `json:"period"`
	Item   ItemResponse   `json:"item"`
}

type HistoryItemResponse struct {
	ItemResponse
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Department  string `json:"department"`
	Position    string `json:"position"`
}

type Report struct {
	EmployeeID string
	Filename   string
	Content    string
}
