package payslip

import (
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/money"
)

type GenerateRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      string `json:"month" binding:"required"`
	Year       int    `json:"year" binding:"required,gte=1900,lte=9999"`
}

type PayslipResponse struct {
	ID            string      `json:"id"`
	PayslipNumber string      `json:"payslip_number"`
	EmployeeID    string      `json:"employee_id"`
	Month         string      `json:"month"`
	Year          int         `json:"year"`
	BasicSalary   money.Money `json:"basic_salary"`
	Allowances    money.Money `json:"allowances"`
	Deductions    money.Money `json:"deductions"`
	NetSalary     money.Money `json:"net_salary"`
	GeneratedDate time.Time   `json:"generated_date"`
}

type GenerationRequestedResponse struct {
	RequestID  string `json:"request_id"`
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"`
	Year       int    `json:"year"`
	Status     string `json:"status"`
}

type Document struct {
	EmployeeID string
	Filename   string
	Data       []byte
}

func mapToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:            p.ID.String(),
		PayslipNumber: p.PayslipNumber,
		EmployeeID:    p.EmployeeID.String(),
		Month:         p.Month,
		Year:          p.Year,
		BasicSalary:   p.BasicSalary,
		Allowances:    p.Allowances,
		Deductions:    p.Deductions,
		NetSalary:     p.NetSalary,
		GeneratedDate: p.GeneratedDate,
	}
}
