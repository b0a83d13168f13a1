package payroll

import "github.com/towet/payroll-processing-sys/internal/shared/money"

type PayrollInput struct {
	BaseSalary         money.Money
	OvertimeHours      float64
	OvertimeRate       money.Money
	Allowances         money.Money
	Bonuses            money.Money
	TaxDeduction       money.Money
	InsuranceDeduction money.Money
	OtherDeductions    money.Money
}

type PayrollAmounts struct {
	OvertimePay money.Money
	GrossPay    money.Money
	NetPay      money.Money
}

// ComputePayrollItem derives overtime, gross and net pay. Net pay is not
// floored at zero.
func ComputePayrollItem(in PayrollInput) PayrollAmounts {
	overtime := in.OvertimeRate.MulFloat(in.OvertimeHours)
	gross := in.BaseSalary + overtime + in.Allowances + in.Bonuses
	net := gross - in.TaxDeduction - in.InsuranceDeduction - in.OtherDeductions

	return PayrollAmounts{
		OvertimePay: overtime,
		GrossPay:    gross,
		NetPay:      net,
	}
}
