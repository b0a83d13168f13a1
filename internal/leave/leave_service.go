package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/towet/payroll-processing-sys/internal/employee"
	employeeerrors "github.com/towet/payroll-processing-sys/internal/employee/errors"
	"github.com/towet/payroll-processing-sys/internal/events"
	leaveerrors "github.com/towet/payroll-processing-sys/internal/leave/errors"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka"
	"github.com/towet/payroll-processing-sys/internal/shared/contextutil"
	"github.com/towet/payroll-processing-sys/internal/worktime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeFinder is the part of the employee repository leave needs.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveResponse, error)
	Decide(ctx context.Context, actorID, id, status string) (LeaveResponse, error)
	Allotments() []Allotment
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	employees EmployeeFinder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	employees EmployeeFinder,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{db: db, repo: repo, outbox: outbox, employees: employees, now: now, logger: l}
}

func validateCreateRequest(req CreateLeaveRequest) (time.Time, time.Time, error) {
	if strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrMissingFields
	}
	start, err := worktime.ParseDate(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := worktime.ParseDate(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if strings.TrimSpace(req.Reason) == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrReasonRequired
	}
	switch req.LeaveType {
	case TypeAnnual, TypeSick, TypePersonal, TypeUnpaid:
	default:
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}
	return start, end, nil
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

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	start, end, err := validateCreateRequest(req)
	if err != nil {
		log.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	empl, err := s.findEmployee(ctx, req.EmployeeID)
	if err != nil {
		log.Warn("create leave employee lookup failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return LeaveResponse{}, err
	}

	now := s.now().UTC()
	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: empl.ID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusPending,
		CreatedBy:  actorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*l, empl.FullName()), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]LeaveResponse, error) {
	switch filter.Status {
	case "", StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, leaveerrors.ErrInvalidStatusFilter
	}

	views, err := s.repo.List(ctx, filter.EmployeeID, filter.Status)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list leave failed", zap.Error(err))
		return nil, err
	}
	return mapViewsToResponse(views), nil
}

// Decide records the administrator's one-time decision on a pending request.
func (s *service) Decide(ctx context.Context, actorID, id, status string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("status", status),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if !IsDecision(status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		log.Error("decide leave lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		log.Warn("decide leave already decided",
			zap.String("leave_id", id),
			zap.String("current_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	now := s.now().UTC()
	moved, err := qtx.Decide(ctx, id, status, actorID, now)
	if err != nil {
		log.Error("decide leave update failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !moved {
		log.Warn("decide leave lost race", zap.String("leave_id", id))
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	var employeeName string
	if empl, err := s.employees.FindByID(ctx, l.EmployeeID.String()); err == nil {
		employeeName = empl.FullName()
	}

	evt, err := kafka.NewOutboxEvent(
		events.ActivityTopic,
		events.EventLeaveDecided,
		"leave",
		id,
		rid,
		events.LeaveDecidedEvent{
			EventType:    events.EventLeaveDecided,
			RequestID:    rid,
			LeaveID:      id,
			EmployeeID:   l.EmployeeID.String(),
			EmployeeName: employeeName,
			LeaveType:    l.LeaveType,
			Status:       status,
			DecidedBy:    actorID,
			OccurredAt:   now,
		},
	)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, evt); err != nil {
		log.Error("decide leave outbox event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("decide leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", status),
	)

	l.Status = status
	l.DecidedBy = &actorID
	l.DecidedAt = &now
	l.UpdatedAt = now
	return mapToResponse(*l, employeeName), nil
}

func (s *service) Allotments() []Allotment {
	return Allotments()
}
