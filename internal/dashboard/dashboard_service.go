package dashboard

import (
	"context"
	"strconv"
	"time"

	"github.com/towet/payroll-processing-sys/internal/payroll"
	"github.com/towet/payroll-processing-sys/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	NoPendingPayroll  = "No pending"
	nextPayrollLayout = "Jan 2, 2006"
	systemActor       = "System"
)

type EmployeeCounter interface {
	Count(ctx context.Context) (int64, error)
}

type TaxDetailsCounter interface {
	Count(ctx context.Context) (int64, error)
}

// PayrollStats is the part of the payroll repository the dashboard reads.
type PayrollStats interface {
	CountPeriodsByStatus(ctx context.Context, status string) (int64, error)
	NextPendingPeriod(ctx context.Context) (*payroll.PayrollPeriod, error)
}

type Service interface {
	Stats(ctx context.Context) ([]StatItem, error)
	RecentActivity(ctx context.Context, limit int) ([]ActivityItem, error)
}

type service struct {
	activity   ActivityRepository
	employees  EmployeeCounter
	payroll    PayrollStats
	taxDetails TaxDetailsCounter
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	activity ActivityRepository,
	employees EmployeeCounter,
	payrollStats PayrollStats,
	taxDetails TaxDetailsCounter,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		activity:   activity,
		employees:  employees,
		payroll:    payrollStats,
		taxDetails: taxDetails,
		now:        now,
		logger:     l,
	}
}

func (s *service) Stats(ctx context.Context) ([]StatItem, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	var (
		employees, pending, taxRecords int64
		next                           *payroll.PayrollPeriod
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		employees, err = s.employees.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		pending, err = s.payroll.CountPeriodsByStatus(gctx, payroll.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		next, err = s.payroll.NextPendingPeriod(gctx)
		return err
	})
	g.Go(func() (err error) {
		taxRecords, err = s.taxDetails.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("dashboard stats failed", zap.Error(err))
		return nil, err
	}

	nextPayroll := NoPendingPayroll
	if next != nil {
		nextPayroll = next.PeriodStart.Format(nextPayrollLayout)
	}

	return []StatItem{
		{Title: "Total Employees", Value: strconv.FormatInt(employees, 10), Change: "+0%", Color: "blue"},
		{Title: "Pending Approvals", Value: strconv.FormatInt(pending, 10), Change: "0%", Color: "orange"},
		{Title: "Next Payroll", Value: nextPayroll, Change: "$0", Color: "green"},
		{Title: "Tax Returns", Value: strconv.FormatInt(taxRecords, 10), Change: "0%", Color: "purple"},
	}, nil
}

func (s *service) RecentActivity(ctx context.Context, limit int) ([]ActivityItem, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	rows, err := s.activity.ListRecent(ctx, limit)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list recent activity failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	items := make([]ActivityItem, len(rows))
	for i, row := range rows {
		user := row.Actor
		if user == "" {
			user = systemActor
		}
		items[i] = ActivityItem{
			ID:          row.ID.String(),
			Type:        row.Type,
			Action:      row.Description,
			ReferenceID: row.ReferenceID,
			User:        user,
			Time:        TimeAgo(now, row.OccurredAt),
		}
	}
	return items, nil
}
