// Package events holds the payloads written to the outbox and read by the consumers.
package events

import "time"

const (
	// PayslipRequestedTopic carries asynchronous payslip generation requests.
	PayslipRequestedTopic = "payroll.payslip.requested.v1"
	// ActivityTopic carries every event that feeds the dashboard activity log.
	ActivityTopic = "payroll.activity.v1"
)

const (
	EventPayslipRequested     = "payslip.requested"
	EventPayslipGenerated     = "payslip.generated"
	EventPayrollPeriodCreated = "payroll.period.created"
	EventLeaveDecided         = "leave.decided"
)

type PayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	EmployeeID  string    `json:"employee_id"`
	Month       string    `json:"month"`
	Year        int       `json:"year"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type PayslipGeneratedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id"`
	PayslipID     string    `json:"payslip_id"`
	PayslipNumber string    `json:"payslip_number"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	Month         string    `json:"month"`
	Year          int       `json:"year"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type PayrollPeriodCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	PeriodID     string    `json:"period_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	PeriodStart  string    `json:"period_start"`
	PeriodEnd    string    `json:"period_end"`
	CreatedBy    string    `json:"created_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type LeaveDecidedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	LeaveID      string    `json:"leave_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	LeaveType    string    `json:"leave_type"`
	Status       string    `json:"status"`
	DecidedBy    string    `json:"decided_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
