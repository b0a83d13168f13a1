package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionClockIn  = "clock_in"
	ActionClockOut = "clock_out"
)

// Attendance is one row per employee per calendar date. TimeIn is nil only
// for manual absent entries.
type Attendance struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_date"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date"`
	TimeIn     *time.Time `gorm:"type:timestamptz"`
	TimeOut    *time.Time `gorm:"type:timestamptz"`
	Status     string     `gorm:"type:varchar(10);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Attendance) TableName() string { return "attendance" }

type AttendanceView struct {
	Attendance
	FirstName string
	LastName  string
}
