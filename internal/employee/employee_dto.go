package employee

import "github.com/towet/payroll-processing-sys/internal/shared/money"

type CreateEmployeeRequest struct {
	FirstName          string      `json:"first_name" binding:"required"`
	LastName           string      `json:"last_name" binding:"required"`
	Email              string      `json:"email" binding:"required,email"`
	Phone              string      `json:"phone"`
	Department         string      `json:"department" binding:"required"`
	Position           string      `json:"position" binding:"required"`
	HireDate           string      `json:"hire_date" binding:"required"`
	GrossSalary        money.Money `json:"gross_salary" binding:"gte=0"`
	PayPeriod          string      `json:"pay_period" binding:"omitempty,oneof=MONTHLY BI-WEEKLY WEEKLY"`
	TaxDeduction       money.Money `json:"tax_deduction" binding:"gte=0"`
	InsuranceDeduction money.Money `json:"insurance_deduction" binding:"gte=0"`
	OtherDeductions    money.Money `json:"other_deductions" binding:"gte=0"`
}

type UpdateEmployeeRequest = CreateEmployeeRequest

type EmployeeResponse struct {
	ID                 string      `json:"id"`
	FirstName          string      `json:"first_name"`
	LastName           string      `json:"last_name"`
	Email              string      `json:"email"`
	Phone              string      `json:"phone"`
	Department         string      `json:"department"`
	Position           string      `json:"position"`
	HireDate           string      `json:"hire_date"`
	GrossSalary        money.Money `json:"gross_salary"`
	PayPeriod          string      `json:"pay_period"`
	TaxDeduction       money.Money `json:"tax_deduction"`
	InsuranceDeduction money.Money `json:"insurance_deduction"`
	OtherDeductions    money.Money `json:"other_deductions"`
	NetSalary          money.Money `json:"net_salary"`
}

type EmployeeOption struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}
