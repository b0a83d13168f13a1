package attendance

import (
	"strings"
	"time"

	"github.com/towet/payroll-processing-sys/internal/worktime"
)

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(worktime.ClockLayout)
	return &v
}

func mapToResponse(a Attendance, employeeName string) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID.String(),
		EmployeeID:   a.EmployeeID.String(),
		EmployeeName: employeeName,
		Date:         a.Date.Format(worktime.DateLayout),
		TimeIn:       formatClock(a.TimeIn),
		TimeOut:      formatClock(a.TimeOut),
		Status:       a.Status,
	}
	// Duration is computed from the displayed HH:mm values, so a shift that
	// crosses midnight comes out negative.
	if resp.TimeIn != nil && resp.TimeOut != nil {
		if d, err := worktime.ShiftDuration(*resp.TimeIn, *resp.TimeOut); err == nil {
			resp.Duration = &d
		}
	}
	return resp
}

func mapViewsToResponse(views []AttendanceView) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(views))
	for i, v := range views {
		resp[i] = mapToResponse(v.Attendance, strings.TrimSpace(v.FirstName+" "+v.LastName))
	}
	return resp
}
