package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeAnnual   = "annual"
	TypeSick     = "sick"
	TypePersonal = "personal"
	TypeUnpaid   = "unpaid"
)

// allotments are display constants; approved leave does not reduce them.
var allotments = []Allotment{
	{LeaveType: TypeAnnual, Days: 15},
	{LeaveType: TypeSick, Days: 10},
	{LeaveType: TypePersonal, Days: 5},
	{LeaveType: TypeUnpaid, Days: 5},
}

type Allotment struct {
	LeaveType string `json:"leave_type"`
	Days      int    `json:"days"`
}

func Allotments() []Allotment {
	out := make([]Allotment, len(allotments))
	copy(out, allotments)
	return out
}

func IsDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Reason    string    `gorm:"type:text;not null"`

	Status    string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedBy string     `gorm:"type:varchar(64)"`
	DecidedBy *string    `gorm:"type:varchar(64)"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Leave) TableName() string { return "leave_requests" }

// LeaveView is a leave row joined with the requesting employee's name.
type LeaveView struct {
	Leave
	FirstName string
	LastName  string
}
