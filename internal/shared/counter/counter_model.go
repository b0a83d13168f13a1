package counter

import "time"

// Counter is one named sequence. GetNextValue upserts into it.
type Counter struct {
	CounterType string    `gorm:"primaryKey"`
	LastValue   int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Counter) TableName() string { return "counters" }
