package worktime_test

import (
	"testing"
	"time"

	"github.com/towet/payroll-processing-sys/internal/worktime"

	"github.com/stretchr/testify/assert"
)

func TestStatusForClock(t *testing.T) {
	cases := []struct {
		clock string
		want  string
	}{
		{"00:00", worktime.StatusPresent},
		{"08:59", worktime.StatusPresent},
		{"09:00", worktime.StatusLate},
		{"09:01", worktime.StatusLate},
		{"17:45", worktime.StatusLate},
	}
	for _, tc := range cases {
		t.Run(tc.clock, func(t *testing.T) {
			got, err := worktime.StatusForClock(tc.clock)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := worktime.StatusForClock("9am")
	assert.ErrorIs(t, err, worktime.ErrInvalidClock)
}

func TestAttendanceStatus_UsesWallClockOfLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 06:30 UTC is 09:30 in UTC+3
	clockIn := time.Date(2024, 5, 10, 6, 30, 0, 0, time.UTC).In(loc)

	assert.Equal(t, worktime.StatusLate, worktime.AttendanceStatus(clockIn))
	assert.Equal(t, worktime.StatusPresent, worktime.AttendanceStatus(clockIn.UTC()))
}

func TestShiftDuration(t *testing.T) {
	d, err := worktime.ShiftDuration("09:00", "17:30")
	assert.NoError(t, err)
	assert.Equal(t, "8h 30m", d.String())
	assert.Equal(t, 510, d.TotalMinutes)

	d, err = worktime.ShiftDuration("09:15", "09:15")
	assert.NoError(t, err)
	assert.Equal(t, "0h 0m", d.String())

	_, err = worktime.ShiftDuration("25:00", "17:30")
	assert.ErrorIs(t, err, worktime.ErrInvalidClock)
}

func TestShiftDuration_CrossMidnightIsNegative(t *testing.T) {
	// kept as observed: no overnight handling
	d, err := worktime.ShiftDuration("23:00", "01:30")
	assert.NoError(t, err)
	assert.Equal(t, -1290, d.TotalMinutes)
	assert.Equal(t, "-22h -30m", d.String())
}

func TestBetween(t *testing.T) {
	in := time.Date(2024, 5, 10, 8, 55, 20, 0, time.UTC)
	out := time.Date(2024, 5, 10, 17, 1, 10, 0, time.UTC)

	assert.Equal(t, "8h 5m", worktime.Between(in, out).String())
}

func TestLeaveSpanDays(t *testing.T) {
	start, _ := worktime.ParseDate("2024-05-10")
	end, _ := worktime.ParseDate("2024-05-12")
	assert.Equal(t, 2, worktime.LeaveSpanDays(start, end))
	assert.Equal(t, 0, worktime.LeaveSpanDays(start, start))
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), worktime.DayOf(ts))
}
