package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "github.com/towet/payroll-processing-sys/internal/attendance/errors"
	"github.com/towet/payroll-processing-sys/internal/employee"
	employeeerrors "github.com/towet/payroll-processing-sys/internal/employee/errors"
	"github.com/towet/payroll-processing-sys/internal/shared/contextutil"
	"github.com/towet/payroll-processing-sys/internal/worktime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

type Service interface {
	Mark(ctx context.Context, employeeID string) (MarkResponse, error)
	MarkAbsent(ctx context.Context, req MarkAbsentRequest) (AttendanceResponse, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeFinder
	now       func() time.Time
	logger    *zap.Logger
}

// NewService uses now for both the attendance date and the late cutoff, so
// the clock's location decides which calendar day a mark belongs to.
func NewService(db *sql.DB, repo Repository, employees EmployeeFinder, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{db: db, repo: repo, employees: employees, now: now, logger: l}
}

func (s *service) findEmployee(ctx context.Context, id string) (*employee.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	empl, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return empl, nil
}

// Mark clocks the employee in on the first call of the day and out on the
// second. Any later call is rejected.
func (s *service) Mark(ctx context.Context, employeeID string) (MarkResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("mark attendance requested", zap.String("employee_id", employeeID))

	empl, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		log.Warn("mark attendance employee lookup failed", zap.Error(err))
		return MarkResponse{}, err
	}

	now := s.now()
	today := worktime.DayOf(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("mark attendance begin tx failed", zap.Error(err))
		return MarkResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("mark attendance lookup failed", zap.Error(err))
		return MarkResponse{}, err
	}

	var (
		row    Attendance
		action string
	)
	if err != nil {
		row = Attendance{
			ID:         uuid.New(),
			EmployeeID: empl.ID,
			Date:       today,
			TimeIn:     &now,
			Status:     worktime.AttendanceStatus(now),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		inserted, err := qtx.Insert(ctx, &row)
		if err != nil {
			log.Error("mark attendance insert failed", zap.Error(err))
			return MarkResponse{}, err
		}
		if !inserted {
			log.Warn("mark attendance lost insert race", zap.String("employee_id", employeeID))
			return MarkResponse{}, attendanceerrors.ErrConcurrentMark
		}
		action = ActionClockIn
	} else {
		switch {
		case existing.TimeIn == nil:
			return MarkResponse{}, attendanceerrors.ErrMarkedAbsent
		case existing.TimeOut != nil:
			return MarkResponse{}, attendanceerrors.ErrAlreadyClockedOut
		}
		updated, err := qtx.SetTimeOut(ctx, existing.ID.String(), now)
		if err != nil {
			log.Error("mark attendance clock out failed", zap.Error(err))
			return MarkResponse{}, err
		}
		if !updated {
			return MarkResponse{}, attendanceerrors.ErrAlreadyClockedOut
		}
		row = *existing
		row.TimeOut = &now
		row.UpdatedAt = now
		action = ActionClockOut
	}

	if err := tx.Commit(); err != nil {
		log.Error("mark attendance commit failed", zap.Error(err))
		return MarkResponse{}, err
	}

	log.Info("mark attendance success",
		zap.String("employee_id", employeeID),
		zap.String("action", action),
		zap.String("status", row.Status),
	)
	return MarkResponse{Action: action, Attendance: mapToResponse(row, empl.FullName())}, nil
}

func (s *service) MarkAbsent(ctx context.Context, req MarkAbsentRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	date, err := worktime.ParseDate(req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	empl, err := s.findEmployee(ctx, req.EmployeeID)
	if err != nil {
		log.Warn("mark absent employee lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	now := s.now()
	row := Attendance{
		ID:         uuid.New(),
		EmployeeID: empl.ID,
		Date:       date,
		Status:     worktime.StatusAbsent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	inserted, err := s.repo.Insert(ctx, &row)
	if err != nil {
		log.Error("mark absent insert failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !inserted {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyRecorded
	}

	log.Info("mark absent success", zap.String("employee_id", req.EmployeeID), zap.String("date", req.Date))
	return mapToResponse(row, empl.FullName()), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	var date *time.Time
	if filter.Date != "" {
		d, err := worktime.ParseDate(filter.Date)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		date = &d
	}

	views, err := s.repo.List(ctx, filter.EmployeeID, date)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list attendance failed", zap.Error(err))
		return nil, err
	}
	return mapViewsToResponse(views), nil
}
