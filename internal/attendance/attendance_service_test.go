package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	attendanceerrors "github.com/towet/payroll-processing-sys/internal/attendance/errors"
	"github.com/towet/payroll-processing-sys/internal/employee"
	employeeMock "github.com/towet/payroll-processing-sys/internal/employee/mock"
	"github.com/towet/payroll-processing-sys/internal/worktime"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// memRepo keeps rows keyed by employee and date, mirroring the unique index.
type memRepo struct {
	rows       map[string]*Attendance
	insertFail bool
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]*Attendance{}} }

func key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(worktime.DateLayout)
}

func (m *memRepo) WithTx(tx *sql.Tx) Repository { return m }

func (m *memRepo) Insert(ctx context.Context, a *Attendance) (bool, error) {
	k := key(a.EmployeeID.String(), a.Date)
	if _, ok := m.rows[k]; ok || m.insertFail {
		return false, nil
	}
	cp := *a
	m.rows[k] = &cp
	return true, nil
}

func (m *memRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	a, ok := m.rows[key(employeeID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memRepo) SetTimeOut(ctx context.Context, id string, at time.Time) (bool, error) {
	for _, a := range m.rows {
		if a.ID.String() == id && a.TimeOut == nil {
			a.TimeOut = &at
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) List(ctx context.Context, employeeID string, date *time.Time) ([]AttendanceView, error) {
	var out []AttendanceView
	for _, a := range m.rows {
		if employeeID != "" && a.EmployeeID.String() != employeeID {
			continue
		}
		if date != nil && !a.Date.Equal(*date) {
			continue
		}
		out = append(out, AttendanceView{Attendance: *a})
	}
	return out, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setup(t *testing.T, at time.Time) (Service, *memRepo, *clock, sqlmock.Sqlmock, *employee.Employee) {
	t.Helper()
	ctrl := gomock.NewController(t)
	employees := employeeMock.NewMockRepository(ctrl)
	empl := &employee.Employee{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"}
	employees.EXPECT().FindByID(gomock.Any(), empl.ID.String()).Return(empl, nil).AnyTimes()

	db, mock, _ := sqlmock.New()
	t.Cleanup(func() { db.Close() })

	repo := newMemRepo()
	c := &clock{t: at}
	return NewService(db, repo, employees, c.now), repo, c, mock, empl
}

func TestService_MarkClockInThenOut(t *testing.T) {
	ctx := context.Background()
	morning := time.Date(2024, 5, 10, 8, 59, 0, 0, time.UTC)
	svc, _, c, mock, empl := setup(t, morning)

	mock.ExpectBegin()
	mock.ExpectCommit()
	in, err := svc.Mark(ctx, empl.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, ActionClockIn, in.Action)
	assert.Equal(t, worktime.StatusPresent, in.Attendance.Status)
	assert.Equal(t, "08:59", *in.Attendance.TimeIn)
	assert.Nil(t, in.Attendance.TimeOut)

	c.t = time.Date(2024, 5, 10, 17, 29, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectCommit()
	out, err := svc.Mark(ctx, empl.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, ActionClockOut, out.Action)
	assert.Equal(t, worktime.StatusPresent, out.Attendance.Status, "status is fixed at clock-in")
	assert.Equal(t, "8h 30m", out.Attendance.Duration.String())

	c.t = time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Mark(ctx, empl.ID.String())
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)
	assert.Equal(t, "already clocked out for today", err.Error())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_MarkLateBoundary(t *testing.T) {
	tests := []struct {
		clock string
		want  string
	}{
		{"08:59", worktime.StatusPresent},
		{"09:00", worktime.StatusLate},
		{"09:01", worktime.StatusLate},
	}
	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			hhmm, _ := time.Parse(worktime.ClockLayout, tt.clock)
			at := time.Date(2024, 5, 10, hhmm.Hour(), hhmm.Minute(), 0, 0, time.UTC)
			svc, _, _, mock, empl := setup(t, at)
			mock.ExpectBegin()
			mock.ExpectCommit()

			resp, err := svc.Mark(context.Background(), empl.ID.String())

			assert.NoError(t, err)
			assert.Equal(t, tt.want, resp.Attendance.Status)
		})
	}
}

func TestService_MarkLostInsertRace(t *testing.T) {
	svc, repo, _, mock, empl := setup(t, time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC))
	repo.insertFail = true
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Mark(context.Background(), empl.ID.String())

	assert.ErrorIs(t, err, attendanceerrors.ErrConcurrentMark)
	assert.Empty(t, repo.rows)
}

func TestService_MarkAbsent(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, mock, empl := setup(t, time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC))

	resp, err := svc.MarkAbsent(ctx, MarkAbsentRequest{EmployeeID: empl.ID.String(), Date: "2024-05-09"})
	assert.NoError(t, err)
	assert.Equal(t, worktime.StatusAbsent, resp.Status)
	assert.Nil(t, resp.TimeIn)

	_, err = svc.MarkAbsent(ctx, MarkAbsentRequest{EmployeeID: empl.ID.String(), Date: "2024-05-09"})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyRecorded)

	_, err = svc.MarkAbsent(ctx, MarkAbsentRequest{EmployeeID: empl.ID.String(), Date: "09/05/2024"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)

	// an absent day cannot be clocked into afterwards
	repo.rows[key(empl.ID.String(), time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))] = &Attendance{
		ID: uuid.New(), EmployeeID: empl.ID, Date: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), Status: worktime.StatusAbsent,
	}
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Mark(ctx, empl.ID.String())
	assert.ErrorIs(t, err, attendanceerrors.ErrMarkedAbsent)
}

func TestMapToResponse_CrossMidnightIsNegative(t *testing.T) {
	in := time.Date(2024, 5, 10, 22, 0, 0, 0, time.UTC)
	out := time.Date(2024, 5, 11, 6, 0, 0, 0, time.UTC)

	resp := mapToResponse(Attendance{ID: uuid.New(), Date: worktime.DayOf(in), TimeIn: &in, TimeOut: &out, Status: worktime.StatusLate}, "")

	assert.Equal(t, -960, resp.Duration.TotalMinutes)
}
