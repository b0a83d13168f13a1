package payroll

import (
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Payroll"

var exportHeaders = []interface{}{
	"Employee", "Department", "Position", "Period Start", "Period End",
	"Base Salary", "Overtime Hours", "Overtime Pay", "Allowances", "Bonuses",
	"Gross Pay", "Tax", "Insurance", "Other", "Net Pay", "Status",
}

// ExportXLSX writes one row per history item below a header row.
func ExportXLSX(items []HistoryItemResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, err
	}

	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			it.FirstName + " " + it.LastName,
			it.Department,
			it.Position,
			it.PeriodStart,
			it.PeriodEnd,
			it.BaseSalary.Float(),
			it.OvertimeHours,
			it.OvertimePay.Float(),
			it.Allowances.Float(),
			it.Bonuses.Float(),
			it.GrossPay.Float(),
			it.TaxDeduction.Float(),
			it.InsuranceDeduction.Float(),
			it.OtherDeductions.Float(),
			it.NetPay.Float(),
			it.Status,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
