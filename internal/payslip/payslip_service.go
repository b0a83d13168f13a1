package payslip

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
	paysliperrors "github.com/towet/payroll-processing-sys/internal/payslip/errors"
	"github.com/towet/payroll-processing-sys/internal/shared/apperror"
	"github.com/towet/payroll-processing-sys/internal/shared/contextutil"
	"github.com/towet/payroll-processing-sys/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const StatusQueued = "queued"

// EmployeeFinder is the part of the employee repository payslips need.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (PayslipResponse, error)
	RequestGeneration(ctx context.Context, actorID string, req GenerateRequest) (GenerationRequestedResponse, error)
	List(ctx context.Context, employeeID string) ([]PayslipResponse, error)
	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	PDF(ctx context.Context, id string) (Document, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	employees EmployeeFinder
	archive   Archive
	now       func() time.Time
	logger    *zap.Logger
}

type Option func(*service)

// WithArchive stores a PDF copy of each generated payslip.
func WithArchive(a Archive) Option {
	return func(s *service) { s.archive = a }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *service) {
		if l != nil {
			s.logger = l.Named("payslip.service")
		}
	}
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	employees EmployeeFinder,
	opts ...Option,
) Service {
	s := &service{
		db:        db,
		repo:      repo,
		counter:   counterRepo,
		outbox:    outbox,
		employees: employees,
		now:       time.Now,
		logger:    zap.L().Named("payslip.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsPermanent reports whether retrying err can never succeed (bad input,
// unknown employee). Consumers skip such messages instead of redelivering.
func IsPermanent(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus >= 400 && appErr.HTTPStatus < 500
	}
	return false
}

func (s *service) validate(ctx context.Context, req GenerateRequest) (string, *employee.Employee, error) {
	month, ok := ParseMonth(req.Month)
	if !ok {
		return "", nil, paysliperrors.ErrInvalidMonth
	}
	if req.Year < 1900 || req.Year > 9999 {
		return "", nil, paysliperrors.ErrInvalidYear
	}
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return "", nil, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, employeeerrors.ErrEmployeeNotFound
		}
		return "", nil, err
	}
	return month, empl, nil
}

// Generate always inserts a new payslip. There is no check for an existing
// one for the same employee and month.
func (s *service) Generate(ctx context.Context, req GenerateRequest) (PayslipResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("generate payslip requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("month", req.Month),
		zap.Int("year", req.Year),
	)

	month, empl, err := s.validate(ctx, req)
	if err != nil {
		log.Warn("generate payslip rejected", zap.Error(err))
		return PayslipResponse{}, err
	}

	seq, err := s.counter.GetNextValue(ctx, counter.PayslipNumber)
	if err != nil {
		log.Error("generate payslip number failed", zap.Error(err))
		return PayslipResponse{}, err
	}

	now := s.now().UTC()
	amounts := ComputeAmounts(empl.GrossSalary)
	p := &Payslip{
		ID:            uuid.New(),
		PayslipNumber: fmt.Sprintf(NumberFormat, seq),
		EmployeeID:    empl.ID,
		Month:         month,
		Year:          req.Year,
		BasicSalary:   amounts.Basic,
		Allowances:    amounts.Allowances,
		Deductions:    amounts.Deductions,
		NetSalary:     amounts.Net,
		GeneratedDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	evt, err := kafka.NewOutboxEvent(
		events.ActivityTopic,
		events.EventPayslipGenerated,
		"payslip",
		p.ID.String(),
		rid,
		events.PayslipGeneratedEvent{
			EventType:     events.EventPayslipGenerated,
			RequestID:     rid,
			PayslipID:     p.ID.String(),
			PayslipNumber: p.PayslipNumber,
			EmployeeID:    empl.ID.String(),
			EmployeeName:  empl.FullName(),
			Month:         month,
			Year:          req.Year,
			OccurredAt:    now,
		},
	)
	if err != nil {
		return PayslipResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("generate payslip begin tx failed", zap.Error(err))
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		log.Error("generate payslip persist failed", zap.Error(err))
		return PayslipResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, evt); err != nil {
		log.Error("generate payslip outbox event failed", zap.Error(err))
		return PayslipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("generate payslip commit failed", zap.Error(err))
		return PayslipResponse{}, err
	}

	s.archivePDF(log, *p, *empl)

	log.Info("generate payslip success",
		zap.String("payslip_id", p.ID.String()),
		zap.String("payslip_number", p.PayslipNumber),
	)
	return mapToResponse(*p), nil
}

func (s *service) archivePDF(log *zap.Logger, p Payslip, empl employee.Employee) {
	if s.archive == nil {
		return
	}
	data, err := RenderPDF(p, empl, p.GeneratedDate)
	if err != nil {
		log.Warn("payslip pdf render failed", zap.String("payslip_id", p.ID.String()), zap.Error(err))
		return
	}
	path, err := s.archive.Save(p.PayslipNumber+".pdf", data)
	if err != nil {
		log.Warn("payslip pdf archive failed", zap.String("payslip_id", p.ID.String()), zap.Error(err))
		return
	}
	log.Debug("payslip pdf archived", zap.String("path", path))
}

// RequestGeneration queues a payslip.requested event; the consumer calls Generate.
func (s *service) RequestGeneration(ctx context.Context, actorID string, req GenerateRequest) (GenerationRequestedResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	month, _, err := s.validate(ctx, req)
	if err != nil {
		log.Warn("payslip request rejected", zap.Error(err))
		return GenerationRequestedResponse{}, err
	}

	requestID := contextutil.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	evt, err := kafka.NewOutboxEvent(
		events.PayslipRequestedTopic,
		events.EventPayslipRequested,
		"employee",
		req.EmployeeID,
		requestID,
		events.PayslipRequestedEvent{
			EventType:   events.EventPayslipRequested,
			RequestID:   requestID,
			EmployeeID:  req.EmployeeID,
			Month:       month,
			Year:        req.Year,
			RequestedBy: actorID,
			OccurredAt:  s.now().UTC(),
		},
	)
	if err != nil {
		return GenerationRequestedResponse{}, err
	}

	if err := s.outbox.Create(ctx, evt); err != nil {
		log.Error("payslip request outbox event failed", zap.Error(err))
		return GenerationRequestedResponse{}, err
	}

	log.Info("payslip generation queued",
		zap.String("employee_id", req.EmployeeID),
		zap.String("outbox_id", evt.ID),
	)
	return GenerationRequestedResponse{
		RequestID:  requestID,
		EmployeeID: req.EmployeeID,
		Month:      month,
		Year:       req.Year,
		Status:     StatusQueued,
	}, nil
}

func (s *service) List(ctx context.Context, employeeID string) ([]PayslipResponse, error) {
	payslips, err := s.repo.List(ctx, employeeID)
	if err != nil {
		s.logger.Error("list payslips failed", zap.Error(err))
		return nil, err
	}

	resp := make([]PayslipResponse, len(payslips))
	for i, p := range payslips {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) find(ctx context.Context, id string) (*Payslip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, paysliperrors.ErrInvalidPayslipID
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paysliperrors.ErrPayslipNotFound
		}
		s.logger.Error("find payslip failed", zap.String("payslip_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayslipResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) PDF(ctx context.Context, id string) (Document, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return Document{}, err
	}

	empl, err := s.employees.FindByID(ctx, p.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Document{}, employeeerrors.ErrEmployeeNotFound
		}
		return Document{}, err
	}

	data, err := RenderPDF(*p, *empl, s.now())
	if err != nil {
		s.logger.Error("render payslip pdf failed", zap.String("payslip_id", id), zap.Error(err))
		return Document{}, err
	}

	return Document{
		EmployeeID: p.EmployeeID.String(),
		Filename:   Filename(*p, *empl),
		Data:       data,
	}, nil
}
