package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/towet/payroll-processing-sys/internal/employee"
	employeeerrors "github.com/towet/payroll-processing-sys/internal/employee/errors"
	"github.com/towet/payroll-processing-sys/internal/events"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka"
	payrollerrors "github.com/towet/payroll-processing-sys/internal/payroll/errors"
	"github.com/towet/payroll-processing-sys/internal/shared/contextutil"
	"github.com/towet/payroll-processing-sys/internal/worktime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeFinder is the part of the employee repository payroll needs.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

type Service interface {
	CreatePeriodWithItem(ctx context.Context, actorID string, req CreatePayrollRequest) (CreatePayrollResponse, error)
	ListPeriods(ctx context.Context, status string) ([]PeriodResponse, error)
	UpdatePeriodStatus(ctx context.Context, id, status string) (PeriodResponse, error)
	History(ctx context.Context, filter HistoryFilter) ([]HistoryItemResponse, error)
	Report(ctx context.Context, itemID string) (Report, error)
	ExportXLSX(ctx context.Context, filter HistoryFilter) ([]byte, error)
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
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		db:        db,
		repo:      repo,
		outbox:    outbox,
		employees: employees,
		now:       now,
		logger:    l,
	}
}

// CreatePeriodWithItem writes the period (with its outbox event) and then the
// item as a second, separate write. If the second write fails the period is
// left behind and ErrOrphanedPeriod names it.
func (s *service) CreatePeriodWithItem(ctx context.Context, actorID string, req CreatePayrollRequest) (CreatePayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create payroll requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("period_start", req.PeriodStart),
		zap.String("period_end", req.PeriodEnd),
	)

	start, errStart := worktime.ParseDate(req.PeriodStart)
	end, errEnd := worktime.ParseDate(req.PeriodEnd)
	if errStart != nil || errEnd != nil {
		log.Warn("create payroll invalid date format")
		return CreatePayrollResponse{}, payrollerrors.ErrInvalidDateFormat
	}
	if !end.After(start) {
		log.Warn("create payroll invalid date range",
			zap.String("period_start", req.PeriodStart),
			zap.String("period_end", req.PeriodEnd),
		)
		return CreatePayrollResponse{}, payrollerrors.ErrInvalidDateRange
	}

	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return CreatePayrollResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	empl, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("create payroll unknown employee", zap.String("employee_id", req.EmployeeID))
			return CreatePayrollResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		log.Error("create payroll employee lookup failed", zap.Error(err))
		return CreatePayrollResponse{}, err
	}

	now := s.now().UTC()
	period := &PayrollPeriod{
		ID:          uuid.New(),
		PeriodStart: start,
		PeriodEnd:   end,
		Status:      StatusPending,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	evt, err := kafka.NewOutboxEvent(
		events.ActivityTopic,
		events.EventPayrollPeriodCreated,
		"payroll_period",
		period.ID.String(),
		rid,
		events.PayrollPeriodCreatedEvent{
			EventType:    events.EventPayrollPeriodCreated,
			RequestID:    rid,
			PeriodID:     period.ID.String(),
			EmployeeID:   req.EmployeeID,
			EmployeeName: empl.FullName(),
			PeriodStart:  req.PeriodStart,
			PeriodEnd:    req.PeriodEnd,
			CreatedBy:    actorID,
			OccurredAt:   now,
		},
	)
	if err != nil {
		return CreatePayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create payroll begin tx failed", zap.Error(err))
		return CreatePayrollResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreatePeriod(ctx, period); err != nil {
		log.Error("create payroll period failed", zap.Error(err))
		return CreatePayrollResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, evt); err != nil {
		log.Error("create payroll outbox event failed", zap.Error(err))
		return CreatePayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("create payroll commit failed", zap.Error(err))
		return CreatePayrollResponse{}, err
	}

	amounts := ComputePayrollItem(PayrollInput{
		BaseSalary:         req.BaseSalary,
		OvertimeHours:      req.OvertimeHours,
		OvertimeRate:       req.OvertimeRate,
		Allowances:         req.Allowances,
		Bonuses:            req.Bonuses,
		TaxDeduction:       req.TaxDeduction,
		InsuranceDeduction: req.InsuranceDeduction,
		OtherDeductions:    req.OtherDeductions,
	})

	item := &PayrollItem{
		ID:                 uuid.New(),
		PeriodID:           period.ID,
		EmployeeID:         empID,
		BaseSalary:         req.BaseSalary,
		OvertimeHours:      req.OvertimeHours,
		OvertimeRate:       req.OvertimeRate,
		OvertimePay:        amounts.OvertimePay,
		Allowances:         req.Allowances,
		Bonuses:            req.Bonuses,
		TaxDeduction:       req.TaxDeduction,
		InsuranceDeduction: req.InsuranceDeduction,
		OtherDeductions:    req.OtherDeductions,
		GrossPay:           amounts.GrossPay,
		NetPay:             amounts.NetPay,
		Status:             StatusPending,
		Notes:              req.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		log.Error("create payroll item failed, period orphaned",
			zap.String("period_id", period.ID.String()),
			zap.Error(err),
		)
		return CreatePayrollResponse{}, payrollerrors.ErrOrphanedPeriod.WithCause(
			fmt.Errorf("period %s: %w", period.ID, err),
		)
	}

	log.Info("create payroll success",
		zap.String("period_id", period.ID.String()),
		zap.String("item_id", item.ID.String()),
		zap.Int64("net_pay_cents", item.NetPay.Cents()),
	)

	return CreatePayrollResponse{
		Period: mapPeriodToResponse(*period),
		Item:   mapItemToResponse(*item),
	}, nil
}

func (s *service) ListPeriods(ctx context.Context, status string) ([]PeriodResponse, error) {
	periods, err := s.repo.ListPeriods(ctx, status)
	if err != nil {
		s.logger.Error("list payroll periods failed", zap.Error(err))
		return nil, err
	}

	resp := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		resp[i] = mapPeriodToResponse(p)
	}
	return resp, nil
}

// UpdatePeriodStatus moves the period and all of its items to status.
func (s *service) UpdatePeriodStatus(ctx context.Context, id, status string) (PeriodResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update payroll status requested", zap.String("period_id", id), zap.String("status", status))

	if _, err := uuid.Parse(id); err != nil {
		return PeriodResponse{}, payrollerrors.ErrInvalidPeriodID
	}

	period, err := s.repo.FindPeriodByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PeriodResponse{}, payrollerrors.ErrPeriodNotFound
		}
		log.Error("update payroll status lookup failed", zap.Error(err))
		return PeriodResponse{}, err
	}

	if period.Status == StatusCompleted {
		log.Warn("update payroll status on completed period", zap.String("period_id", id))
		return PeriodResponse{}, payrollerrors.ErrPeriodImmutable
	}
	if !CanTransition(period.Status, status) {
		log.Warn("update payroll status invalid transition",
			zap.String("from", period.Status),
			zap.String("to", status),
		)
		return PeriodResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update payroll status begin tx failed", zap.Error(err))
		return PeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	moved, err := qtx.UpdatePeriodStatus(ctx, id, period.Status, status)
	if err != nil {
		log.Error("update payroll status failed", zap.Error(err))
		return PeriodResponse{}, err
	}
	if !moved {
		log.Warn("update payroll status lost race", zap.String("period_id", id))
		return PeriodResponse{}, payrollerrors.ErrInvalidStatusTransition
	}
	if err := qtx.UpdateItemsStatus(ctx, id, status); err != nil {
		log.Error("update payroll item status failed", zap.Error(err))
		return PeriodResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("update payroll status commit failed", zap.Error(err))
		return PeriodResponse{}, err
	}

	log.Info("update payroll status success",
		zap.String("period_id", id),
		zap.String("from", period.Status),
		zap.String("to", status),
	)
	period.Status = status
	return mapPeriodToResponse(*period), nil
}

func (s *service) historyQuery(filter HistoryFilter) (HistoryQuery, error) {
	q := HistoryQuery{
		EmployeeID: filter.EmployeeID,
		Search:     filter.Search,
		SortBy:     filter.SortBy,
		Desc:       true,
	}

	if q.SortBy == "" {
		q.SortBy = "created_at"
	}
	if _, ok := historySortColumns[q.SortBy]; !ok {
		return HistoryQuery{}, payrollerrors.ErrInvalidSort
	}
	switch filter.SortDir {
	case "", "desc":
	case "asc":
		q.Desc = false
	default:
		return HistoryQuery{}, payrollerrors.ErrInvalidSort
	}

	now := s.now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	switch filter.Period {
	case "", PeriodFilterAll:
	case PeriodFilterThisMonth:
		from, to := thisMonth, thisMonth.AddDate(0, 1, 0)
		q.From, q.To = &from, &to
	case PeriodFilterLastMonth:
		from, to := thisMonth.AddDate(0, -1, 0), thisMonth
		q.From, q.To = &from, &to
	default:
		return HistoryQuery{}, payrollerrors.ErrInvalidPeriodFilter
	}

	return q, nil
}

func (s *service) History(ctx context.Context, filter HistoryFilter) ([]HistoryItemResponse, error) {
	q, err := s.historyQuery(filter)
	if err != nil {
		s.logger.Warn("payroll history invalid filter", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}

	items, err := s.repo.FindHistory(ctx, q)
	if err != nil {
		s.logger.Error("payroll history failed", zap.Error(err))
		return nil, err
	}

	resp := make([]HistoryItemResponse, len(items))
	for i, it := range items {
		resp[i] = mapHistoryToResponse(it)
	}
	return resp, nil
}

func (s *service) Report(ctx context.Context, itemID string) (Report, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return Report{}, payrollerrors.ErrInvalidItemID
	}

	item, err := s.repo.FindHistoryItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Report{}, payrollerrors.ErrItemNotFound
		}
		s.logger.Error("payroll report lookup failed", zap.String("item_id", itemID), zap.Error(err))
		return Report{}, err
	}

	return RenderReport(*item), nil
}

func (s *service) ExportXLSX(ctx context.Context, filter HistoryFilter) ([]byte, error) {
	items, err := s.History(ctx, filter)
	if err != nil {
		return nil, err
	}

	data, err := ExportXLSX(items)
	if err != nil {
		s.logger.Error("payroll export failed", zap.Int("rows", len(items)), zap.Error(err))
		return nil, err
	}
	return data, nil
}
