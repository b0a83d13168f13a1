// Package worktime holds the clock arithmetic shared by attendance and leave:
// late/present derivation, shift length and leave span.
package worktime

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"

	// LateFromHour is the first wall-clock hour counted as late. Minutes are ignored.
	LateFromHour = 9

	ClockLayout = "15:04"
	DateLayout  = "2006-01-02"
)

var ErrInvalidClock = errors.New("invalid time, expected HH:mm")

// AttendanceStatus derives the status stored at clock-in from the hour of
// clockIn in its own location. Absent is never derived here.
func AttendanceStatus(clockIn time.Time) string {
	if clockIn.Hour() >= LateFromHour {
		return StatusLate
	}
	return StatusPresent
}

// StatusForClock is AttendanceStatus for an "HH:mm" string.
func StatusForClock(hhmm string) (string, error) {
	t, err := time.Parse(ClockLayout, hhmm)
	if err != nil {
		return "", ErrInvalidClock
	}
	return AttendanceStatus(t), nil
}

type Duration struct {
	TotalMinutes int `json:"total_minutes"`
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
}

func (d Duration) String() string {
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// NewDuration splits a minute count into floored hours and a remainder that
// keeps the sign of total, so -90 becomes -2h -30m.
func NewDuration(total int) Duration {
	return Duration{
		TotalMinutes: total,
		Hours:        int(math.Floor(float64(total) / 60)),
		Minutes:      total % 60,
	}
}

// ShiftDuration computes timeOut - timeIn for two "HH:mm" values on the same
// date. A timeOut earlier than timeIn is not treated as crossing midnight;
// the result is simply negative.
func ShiftDuration(timeIn, timeOut string) (Duration, error) {
	in, err := time.Parse(ClockLayout, timeIn)
	if err != nil {
		return Duration{}, ErrInvalidClock
	}
	out, err := time.Parse(ClockLayout, timeOut)
	if err != nil {
		return Duration{}, ErrInvalidClock
	}
	return NewDuration(int(out.Sub(in) / time.Minute)), nil
}

// Between is ShiftDuration for two instants, truncated to whole minutes.
func Between(in, out time.Time) Duration {
	return NewDuration(int(out.Sub(in) / time.Minute))
}

// LeaveSpanDays is end - start rounded to whole days. It is exclusive of the
// end date (10th to 12th is 2) and only used for display.
func LeaveSpanDays(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// DayOf returns midnight of t's calendar date in t's location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func ParseDate(v string) (time.Time, error) {
	return time.Parse(DateLayout, v)
}
