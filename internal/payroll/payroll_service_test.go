package payroll_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/towet/payroll-processing-sys/internal/employee"
	employeeerrors "github.com/towet/payroll-processing-sys/internal/employee/errors"
	employeeMock "github.com/towet/payroll-processing-sys/internal/employee/mock"
	"github.com/towet/payroll-processing-sys/internal/events"
	"github.com/towet/payroll-processing-sys/internal/messaging/kafka"
	kafkaMock "github.com/towet/payroll-processing-sys/internal/messaging/kafka/mock"
	"github.com/towet/payroll-processing-sys/internal/payroll"
	payrollerrors "github.com/towet/payroll-processing-sys/internal/payroll/errors"
	payrollMock "github.com/towet/payroll-processing-sys/internal/payroll/mock"
	"github.com/towet/payroll-processing-sys/internal/shared/money"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *payrollMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	employees *employeeMock.MockRepository
	service   payroll.Service
}

func setupServiceTest(t *testing.T, now time.Time) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()

	deps := &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      payrollMock.NewMockRepository(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
	}
	deps.service = payroll.NewService(db, deps.repo, deps.outbox, deps.employees, func() time.Time { return now })
	return deps
}

func createRequest(employeeID string) payroll.CreatePayrollRequest {
	return payroll.CreatePayrollRequest{
		EmployeeID:   employeeID,
		PeriodStart:  "2024-05-01",
		PeriodEnd:    "2024-05-31",
		BaseSalary:   money.FromFloat(1000),
		TaxDeduction: money.FromFloat(1200),
	}
}

func TestPayrollService_CreatePeriodWithItem(t *testing.T) {
	ctx := context.Background()
	empID := uuid.NewString()
	empl := &employee.Employee{ID: uuid.MustParse(empID), FirstName: "Ada", LastName: "Lovelace"}

	t.Run("success writes period with event, then item", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		var periodID uuid.UUID
		deps.employees.EXPECT().FindByID(ctx, empID).Return(empl, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CreatePeriod(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, p *payroll.PayrollPeriod) error {
			assert.Equal(t, payroll.StatusPending, p.Status)
			assert.Equal(t, "admin-1", p.CreatedBy)
			periodID = p.ID
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.ActivityTopic, e.Topic)
			assert.Equal(t, events.EventPayrollPeriodCreated, e.EventType)
			assert.Equal(t, periodID.String(), e.AggregateID)
			assert.Contains(t, string(e.Payload), "Ada Lovelace")
			return nil
		})
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().CreateItem(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, i *payroll.PayrollItem) error {
			assert.Equal(t, periodID, i.PeriodID)
			assert.Equal(t, payroll.StatusPending, i.Status)
			return nil
		})

		resp, err := deps.service.CreatePeriodWithItem(ctx, "admin-1", createRequest(empID))

		assert.NoError(t, err)
		assert.Equal(t, "2024-05-01", resp.Period.PeriodStart)
		assert.Equal(t, "1000.00", resp.Item.GrossPay.String())
		assert.Equal(t, "-200.00", resp.Item.NetPay.String())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("item failure leaves an orphaned period", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		var periodID uuid.UUID
		deps.employees.EXPECT().FindByID(ctx, empID).Return(empl, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CreatePeriod(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, p *payroll.PayrollPeriod) error {
			periodID = p.ID
			return nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().CreateItem(ctx, gomock.Any()).Return(errors.New("connection reset"))

		_, err := deps.service.CreatePeriodWithItem(ctx, "admin-1", createRequest(empID))

		assert.ErrorIs(t, err, payrollerrors.ErrOrphanedPeriod)
		assert.Contains(t, err.Error(), periodID.String())
	})

	t.Run("period failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.employees.EXPECT().FindByID(ctx, empID).Return(empl, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CreatePeriod(ctx, gomock.Any()).Return(errors.New("db down"))
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.CreatePeriodWithItem(ctx, "admin-1", createRequest(empID))

		assert.EqualError(t, err, "db down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("end date not after start date is rejected before any write", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		req := createRequest(empID)
		req.PeriodEnd = req.PeriodStart

		_, err := deps.service.CreatePeriodWithItem(ctx, "admin-1", req)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateRange)
	})

	t.Run("invalid date format", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		req := createRequest(empID)
		req.PeriodStart = "05/01/2024"

		_, err := deps.service.CreatePeriodWithItem(ctx, "admin-1", req)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateFormat)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.employees.EXPECT().FindByID(ctx, empID).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.CreatePeriodWithItem(ctx, "admin-1", createRequest(empID))

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestPayrollService_UpdatePeriodStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	period := func(status string) *payroll.PayrollPeriod {
		return &payroll.PayrollPeriod{ID: id, Status: status, PeriodStart: fixedNow, PeriodEnd: fixedNow.AddDate(0, 0, 14)}
	}

	t.Run("pending to processing moves items too", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.repo.EXPECT().FindPeriodByID(ctx, id.String()).Return(period(payroll.StatusPending), nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().UpdatePeriodStatus(ctx, id.String(), payroll.StatusPending, payroll.StatusProcessing).Return(true, nil)
		deps.repo.EXPECT().UpdateItemsStatus(ctx, id.String(), payroll.StatusProcessing).Return(nil)
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.UpdatePeriodStatus(ctx, id.String(), payroll.StatusProcessing)

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusProcessing, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("completed period is immutable", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.repo.EXPECT().FindPeriodByID(ctx, id.String()).Return(period(payroll.StatusCompleted), nil)

		_, err := deps.service.UpdatePeriodStatus(ctx, id.String(), payroll.StatusFailed)

		assert.ErrorIs(t, err, payrollerrors.ErrPeriodImmutable)
	})

	t.Run("pending straight to completed", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.repo.EXPECT().FindPeriodByID(ctx, id.String()).Return(period(payroll.StatusPending), nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().UpdatePeriodStatus(ctx, id.String(), payroll.StatusPending, payroll.StatusCompleted).Return(true, nil)
		deps.repo.EXPECT().UpdateItemsStatus(ctx, id.String(), payroll.StatusCompleted).Return(nil)
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.UpdatePeriodStatus(ctx, id.String(), payroll.StatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusCompleted, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("failed period reruns through processing", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.repo.EXPECT().FindPeriodByID(ctx, id.String()).Return(period(payroll.StatusFailed), nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().UpdatePeriodStatus(ctx, id.String(), payroll.StatusFailed, payroll.StatusProcessing).Return(true, nil)
		deps.repo.EXPECT().UpdateItemsStatus(ctx, id.String(), payroll.StatusProcessing).Return(nil)
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.UpdatePeriodStatus(ctx, id.String(), payroll.StatusProcessing)

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusProcessing, resp.Status)
	})

	t.Run("failed to completed is rejected", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.repo.EXPECT().FindPeriodByID(ctx, id.String()).Return(period(payroll.StatusFailed), nil)

		_, err := deps.service.UpdatePeriodStatus(ctx, id.String(), payroll.StatusCompleted)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})

	t.Run("concurrent change is rejected", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.repo.EXPECT().FindPeriodByID(ctx, id.String()).Return(period(payroll.StatusProcessing), nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().UpdatePeriodStatus(ctx, id.String(), payroll.StatusProcessing, payroll.StatusCompleted).Return(false, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.UpdatePeriodStatus(ctx, id.String(), payroll.StatusCompleted)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.repo.EXPECT().FindPeriodByID(ctx, id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UpdatePeriodStatus(ctx, id.String(), payroll.StatusProcessing)

		assert.ErrorIs(t, err, payrollerrors.ErrPeriodNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		_, err := deps.service.UpdatePeriodStatus(ctx, "nope", payroll.StatusProcessing)

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriodID)
	})
}

func TestPayrollService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("this month defaults to created_at desc", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.repo.EXPECT().FindHistory(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, q payroll.HistoryQuery) ([]payroll.PayrollHistoryItem, error) {
			assert.Equal(t, "created_at", q.SortBy)
			assert.True(t, q.Desc)
			assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *q.From)
			assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *q.To)
			assert.Equal(t, "ada", q.Search)
			return []payroll.PayrollHistoryItem{historyItem()}, nil
		})

		resp, err := deps.service.History(ctx, payroll.HistoryFilter{Period: "thisMonth", Search: "ada"})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Lovelace", resp[0].LastName)
		assert.Equal(t, "2024-05-01", resp[0].PeriodStart)
	})

	t.Run("last month across a year boundary", func(t *testing.T) {
		deps := setupServiceTest(t, time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC))
		defer deps.db.Close()

		deps.repo.EXPECT().FindHistory(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, q payroll.HistoryQuery) ([]payroll.PayrollHistoryItem, error) {
			assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), *q.From)
			assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *q.To)
			assert.Equal(t, "net_pay", q.SortBy)
			assert.False(t, q.Desc)
			return nil, nil
		})

		_, err := deps.service.History(ctx, payroll.HistoryFilter{Period: "lastMonth", SortBy: "net_pay", SortDir: "asc"})
		assert.NoError(t, err)
	})

	t.Run("all has no date bounds", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		deps.repo.EXPECT().FindHistory(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, q payroll.HistoryQuery) ([]payroll.PayrollHistoryItem, error) {
			assert.Nil(t, q.From)
			assert.Nil(t, q.To)
			return nil, nil
		})

		_, err := deps.service.History(ctx, payroll.HistoryFilter{Period: "all"})
		assert.NoError(t, err)
	})

	t.Run("rejects unknown sort and period", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		_, err := deps.service.History(ctx, payroll.HistoryFilter{SortBy: "employee_id"})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidSort)

		_, err = deps.service.History(ctx, payroll.HistoryFilter{SortDir: "sideways"})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidSort)

		_, err = deps.service.History(ctx, payroll.HistoryFilter{Period: "nextYear"})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriodFilter)
	})
}

func TestPayrollService_Report(t *testing.T) {
	ctx := context.Background()

	t.Run("renders the stored item", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		item := historyItem()
		deps.repo.EXPECT().FindHistoryItem(ctx, item.ID.String()).Return(&item, nil)

		report, err := deps.service.Report(ctx, item.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "payroll-report-Ada-Lovelace-2024-05-01.txt", report.Filename)
	})

	t.Run("missing item", func(t *testing.T) {
		deps := setupServiceTest(t, fixedNow)
		defer deps.db.Close()

		id := uuid.NewString()
		deps.repo.EXPECT().FindHistoryItem(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Report(ctx, id)

		assert.ErrorIs(t, err, payrollerrors.ErrItemNotFound)
	})
}
