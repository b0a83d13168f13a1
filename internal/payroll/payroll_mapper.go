package payroll

import "github.com/towet/payroll-processing-sys/internal/worktime"

func mapPeriodToResponse(p PayrollPeriod) PeriodResponse {
	return PeriodResponse{
		ID:          p.ID.String(),
		PeriodStart: p.PeriodStart.Format(worktime.DateLayout),
		PeriodEnd:   p.PeriodEnd.Format(worktime.DateLayout),
		Status:      p.Status,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func mapItemToResponse(i PayrollItem) ItemResponse {
	return ItemResponse{
		ID:                 i.ID.String(),
		PeriodID:           i.PeriodID.String(),
		EmployeeID:         i.EmployeeID.String(),
		BaseSalary:         i.BaseSalary,
		OvertimeHours:      i.OvertimeHours,
		OvertimeRate:       i.OvertimeRate,
		OvertimePay:        i.OvertimePay,
		Allowances:         i.Allowances,
		Bonuses:            i.Bonuses,
		TaxDeduction:       i.TaxDeduction,
		InsuranceDeduction: i.InsuranceDeduction,
		OtherDeductions:    i.OtherDeductions,
		GrossPay:           i.GrossPay,
		NetPay:             i.NetPay,
		Status:             i.Status,
		Notes:              i.Notes,
		CreatedAt:          i.CreatedAt,
	}
}

func mapHistoryToResponse(h PayrollHistoryItem) HistoryItemResponse {
	return HistoryItemResponse{
		ItemResponse: mapItemToResponse(h.PayrollItem),
		PeriodStart:  h.PeriodStart.Format(worktime.DateLayout),
		PeriodEnd:    h.PeriodEnd.Format(worktime.DateLayout),
		FirstName:    h.FirstName,
		LastName:     h.LastName,
		Department:   h.Department,
		Position:     h.Position,
	}
}
