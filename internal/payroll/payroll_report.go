package payroll

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/towet/payroll-processing-sys/internal/worktime"
)

const reportPeriodLayout = "Jan 2, 2006"

// RenderReport produces the plain-text payroll report for one item.
func RenderReport(h PayrollHistoryItem) Report {
	notes := strings.TrimSpace(h.Notes)
	if notes == "" {
		notes = "N/A"
	}

	var b strings.Builder
	b.WriteString("Payroll Report\n")
	b.WriteString("-------------\n")
	fmt.Fprintf(&b, "Employee: %s %s\n", h.FirstName, h.LastName)
	fmt.Fprintf(&b, "Department: %s\n", h.Department)
	fmt.Fprintf(&b, "Position: %s\n", h.Position)
	fmt.Fprintf(&b, "Period: %s - %s\n",
		h.PeriodStart.Format(reportPeriodLayout),
		h.PeriodEnd.Format(reportPeriodLayout),
	)

	b.WriteString("\nEarnings\n")
	b.WriteString("--------\n")
	fmt.Fprintf(&b, "Base Salary: %s\n", h.BaseSalary.Dollars())
	fmt.Fprintf(&b, "Overtime Hours: %s\n", strconv.FormatFloat(h.OvertimeHours, 'f', -1, 64))
	fmt.Fprintf(&b, "Overtime Rate: %s\n", h.OvertimeRate.Dollars())
	fmt.Fprintf(&b, "Overtime Pay: %s\n", h.OvertimePay.Dollars())
	fmt.Fprintf(&b, "Allowances: %s\n", h.Allowances.Dollars())
	fmt.Fprintf(&b, "Bonuses: %s\n", h.Bonuses.Dollars())

	b.WriteString("\nDeductions\n")
	b.WriteString("----------\n")
	fmt.Fprintf(&b, "Tax: %s\n", h.TaxDeduction.Dollars())
	fmt.Fprintf(&b, "Insurance: %s\n", h.InsuranceDeduction.Dollars())
	fmt.Fprintf(&b, "Other: %s\n", h.OtherDeductions.Dollars())

	b.WriteString("\nSummary\n")
	b.WriteString("-------\n")
	fmt.Fprintf(&b, "Gross Pay: %s\n", h.GrossPay.Dollars())
	fmt.Fprintf(&b, "Net Pay: %s\n", h.NetPay.Dollars())

	fmt.Fprintf(&b, "\nNotes: %s", notes)

	return Report{
		EmployeeID: h.EmployeeID.String(),
		Filename: fmt.Sprintf("payroll-report-%s-%s-%s.txt",
			h.FirstName, h.LastName, h.PeriodStart.Format(worktime.DateLayout)),
		Content: b.String(),
	}
}
