package payroll_test

import (
	"testing"

	"github.com/towet/payroll-processing-sys/internal/payroll"
	"github.com/towet/payroll-processing-sys/internal/shared/money"

	"github.com/stretchr/testify/assert"
)

func TestComputePayrollItem(t *testing.T) {
	t.Run("full breakdown", func(t *testing.T) {
		got := payroll.ComputePayrollItem(payroll.PayrollInput{
			BaseSalary:         money.FromFloat(5000),
			OvertimeHours:      10,
			OvertimeRate:       money.FromFloat(25.50),
			Allowances:         money.FromFloat(200),
			Bonuses:            money.FromFloat(300),
			TaxDeduction:       money.FromFloat(1100),
			InsuranceDeduction: money.FromFloat(150),
			OtherDeductions:    money.FromFloat(50),
		})

		assert.Equal(t, "255.00", got.OvertimePay.String())
		assert.Equal(t, "5755.00", got.GrossPay.String())
		assert.Equal(t, "4455.00", got.NetPay.String())
	})

	t.Run("missing inputs are zero", func(t *testing.T) {
		got := payroll.ComputePayrollItem(payroll.PayrollInput{BaseSalary: money.FromFloat(1000)})

		assert.Equal(t, money.Money(0), got.OvertimePay)
		assert.Equal(t, money.FromFloat(1000), got.GrossPay)
		assert.Equal(t, money.FromFloat(1000), got.NetPay)
	})

	t.Run("net pay is not floored", func(t *testing.T) {
		got := payroll.ComputePayrollItem(payroll.PayrollInput{
			BaseSalary:   money.FromFloat(1000),
			TaxDeduction: money.FromFloat(1200),
		})

		assert.Equal(t, "-200.00", got.NetPay.String())
	})

	t.Run("two-decimal inputs sum exactly", func(t *testing.T) {
		values := []float64{0.01, 0.1, 0.29, 1.15, 19.99, 1234.56, 99999.99}
		for _, base := range values {
			for _, ded := range values {
				in := payroll.PayrollInput{
					BaseSalary:      money.FromFloat(base),
					Allowances:      money.FromFloat(0.07),
					Bonuses:         money.FromFloat(ded),
					TaxDeduction:    money.FromFloat(ded),
					OtherDeductions: money.FromFloat(0.03),
				}
				got := payroll.ComputePayrollItem(in)

				assert.Equal(t, in.BaseSalary.Cents()+7+in.Bonuses.Cents(), got.GrossPay.Cents())
				assert.Equal(t, got.GrossPay.Cents()-in.TaxDeduction.Cents()-3, got.NetPay.Cents())
			}
		}
	})
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{payroll.StatusPending, payroll.StatusProcessing},
		{payroll.StatusPending, payroll.StatusCompleted},
		{payroll.StatusPending, payroll.StatusFailed},
		{payroll.StatusProcessing, payroll.StatusCompleted},
		{payroll.StatusProcessing, payroll.StatusFailed},
		{payroll.StatusFailed, payroll.StatusProcessing},
	}
	for _, tr := range allowed {
		assert.True(t, payroll.CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	rejected := [][2]string{
		{payroll.StatusCompleted, payroll.StatusProcessing},
		{payroll.StatusCompleted, payroll.StatusFailed},
		{payroll.StatusFailed, payroll.StatusCompleted},
		{payroll.StatusProcessing, payroll.StatusPending},
		{payroll.StatusPending, payroll.StatusPending},
	}
	for _, tr := range rejected {
		assert.False(t, payroll.CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}
