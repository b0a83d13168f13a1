package dashboard

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActivityPayroll = "payroll"
	ActivityLeave   = "leave"
	ActivityPayslip = "payslip"
)

// DefaultActivityLimit is how many entries the dashboard shows when the
// caller does not ask for a specific number.
const DefaultActivityLimit = 3

// ActivityEntry is what a consumer hands to the recorder.
type ActivityEntry struct {
	Type        string
	Description string
	ReferenceID string
	Actor       string
	OccurredAt  time.Time
}

type ActivityLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Description string    `gorm:"type:text;not null"`
	ReferenceID string    `gorm:"type:varchar(64);index"`
	Actor       string    `gorm:"type:varchar(150)"`
	OccurredAt  time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
}

func (ActivityLog) TableName() string { return "activity_log" }
