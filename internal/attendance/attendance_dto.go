package attendance

import "github.com/towet/payroll-processing-sys/internal/worktime"

type MarkAbsentRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
}

type ListFilter struct {
	EmployeeID string `form:"employee_id"`
	Date       string `form:"date"`
}

type MarkResponse struct {
	Action     string             `json:"action"`
	Attendance AttendanceResponse `json:"attendance"`
}

type AttendanceResponse struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employee_id"`
	EmployeeName string             `json:"employee_name,omitempty"`
	Date         string             `json:"date"`
	TimeIn       *string            `json:"time_in"`
	TimeOut      *string            `json:"time_out"`
	Status       string             `json:"status"`
	Duration     *worktime.Duration `json:"duration,omitempty"`
}
