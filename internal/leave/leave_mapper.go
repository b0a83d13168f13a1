package leave

import (
	"strings"
	"time"

	"github.com/towet/payroll-processing-sys/internal/worktime"
)

func mapToResponse(l Leave, employeeName string) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		EmployeeName: employeeName,
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate.Format(worktime.DateLayout),
		EndDate:      l.EndDate.Format(worktime.DateLayout),
		Days:         worktime.LeaveSpanDays(l.StartDate, l.EndDate),
		Reason:       l.Reason,
		Status:       l.Status,
		DecidedBy:    l.DecidedBy,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapViewsToResponse(views []LeaveView) []LeaveResponse {
	resp := make([]LeaveResponse, len(views))
	for i, v := range views {
		resp[i] = mapToResponse(v.Leave, strings.TrimSpace(v.FirstName+" "+v.LastName))
	}
	return resp
}
