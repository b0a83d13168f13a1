package payslip_test

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
	"github.com/towet/payroll-processing-sys/internal/payslip"
	paysliperrors "github.com/towet/payroll-processing-sys/internal/payslip/errors"
	"github.com/towet/payroll-processing-sys/internal/shared/counter"
	counterMock "github.com/towet/payroll-processing-sys/internal/shared/counter/mock"
	"github.com/towet/payroll-processing-sys/internal/shared/money"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type memoryRepo struct {
	rows []payslip.Payslip
}

func (m *memoryRepo) WithTx(tx *sql.Tx) payslip.Repository { return m }

func (m *memoryRepo) Create(ctx context.Context, p *payslip.Payslip) error {
	m.rows = append(m.rows, *p)
	return nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id string) (*payslip.Payslip, error) {
	for i := range m.rows {
		if m.rows[i].ID.String() == id {
			return &m.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepo) List(ctx context.Context, employeeID string) ([]payslip.Payslip, error) {
	var out []payslip.Payslip
	for _, p := range m.rows {
		if employeeID == "" || p.EmployeeID.String() == employeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeArchive struct {
	saved map[string][]byte
}

func (f *fakeArchive) Save(name string, data []byte) (string, error) {
	f.saved[name] = data
	return "/tmp/" + name, nil
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *memoryRepo
	counter   *counterMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	employees *employeeMock.MockRepository
	archive   *fakeArchive
	service   payslip.Service
}

var fixedNow = time.Date(2024, 10, 14, 9, 30, 0, 0, time.UTC)

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()

	deps := &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      &memoryRepo{},
		counter:   counterMock.NewMockRepository(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
		archive:   &fakeArchive{saved: map[string][]byte{}},
	}
	deps.service = payslip.NewService(db, deps.repo, deps.counter, deps.outbox, deps.employees,
		payslip.WithClock(func() time.Time { return fixedNow }),
		payslip.WithArchive(deps.archive),
	)
	return deps
}

func grace() *employee.Employee {
	return &employee.Employee{
		ID:          uuid.New(),
		FirstName:   "Grace",
		LastName:    "Hopper",
		Department:  "Engineering",
		Position:    "Admiral",
		GrossSalary: money.FromFloat(5000),
	}
}

func expectGenerate(deps *serviceDeps, empl *employee.Employee, seq int64) {
	deps.employees.EXPECT().FindByID(gomock.Any(), empl.ID.String()).Return(empl, nil)
	deps.counter.EXPECT().GetNextValue(gomock.Any(), counter.PayslipNumber).Return(seq, nil)
	deps.sqlMock.ExpectBegin()
	deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
	deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
		if e.EventType != events.EventPayslipGenerated || e.Topic != events.ActivityTopic {
			return errors.New("unexpected event")
		}
		return nil
	})
	deps.sqlMock.ExpectCommit()
}

func TestPayslipService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies fixed allowance and deduction rates", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		empl := grace()
		expectGenerate(deps, empl, 1)

		resp, err := deps.service.Generate(ctx, payslip.GenerateRequest{EmployeeID: empl.ID.String(), Month: "october", Year: 2024})

		assert.NoError(t, err)
		assert.Equal(t, "PS-000001", resp.PayslipNumber)
		assert.Equal(t, "October", resp.Month)
		assert.Equal(t, "5000.00", resp.BasicSalary.String())
		assert.Equal(t, "500.00", resp.Allowances.String())
		assert.Equal(t, "750.00", resp.Deductions.String())
		assert.Equal(t, "4750.00", resp.NetSalary.String())
		assert.Equal(t, fixedNow, resp.GeneratedDate)
		assert.Contains(t, deps.archive.saved, "PS-000001.pdf")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("generating twice stores two rows", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		empl := grace()
		expectGenerate(deps, empl, 7)
		expectGenerate(deps, empl, 8)

		req := payslip.GenerateRequest{EmployeeID: empl.ID.String(), Month: "October", Year: 2024}
		first, err := deps.service.Generate(ctx, req)
		assert.NoError(t, err)
		second, err := deps.service.Generate(ctx, req)
		assert.NoError(t, err)

		assert.Len(t, deps.repo.rows, 2)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, "PS-000008", second.PayslipNumber)

		listed, err := deps.service.List(ctx, empl.ID.String())
		assert.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("invalid month is permanent", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Generate(ctx, payslip.GenerateRequest{EmployeeID: uuid.NewString(), Month: "Oct", Year: 2024})

		assert.ErrorIs(t, err, paysliperrors.ErrInvalidMonth)
		assert.True(t, payslip.IsPermanent(err))
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		id := uuid.NewString()
		deps.employees.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Generate(ctx, payslip.GenerateRequest{EmployeeID: id, Month: "May", Year: 2024})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.True(t, payslip.IsPermanent(err))
	})

	t.Run("counter failure is transient", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		empl := grace()
		deps.employees.EXPECT().FindByID(gomock.Any(), empl.ID.String()).Return(empl, nil)
		deps.counter.EXPECT().GetNextValue(gomock.Any(), counter.PayslipNumber).Return(int64(0), errors.New("db down"))

		_, err := deps.service.Generate(ctx, payslip.GenerateRequest{EmployeeID: empl.ID.String(), Month: "May", Year: 2024})

		assert.Error(t, err)
		assert.False(t, payslip.IsPermanent(err))
		assert.Empty(t, deps.repo.rows)
	})
}

func TestPayslipService_RequestGeneration(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()
	empl := grace()

	deps.employees.EXPECT().FindByID(gomock.Any(), empl.ID.String()).Return(empl, nil)
	deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
		assert.Equal(t, events.PayslipRequestedTopic, e.Topic)
		assert.Equal(t, events.EventPayslipRequested, e.EventType)
		assert.Equal(t, empl.ID.String(), e.AggregateID)
		return nil
	})

	resp, err := deps.service.RequestGeneration(context.Background(), "admin-1",
		payslip.GenerateRequest{EmployeeID: empl.ID.String(), Month: "June", Year: 2024})

	assert.NoError(t, err)
	assert.Equal(t, payslip.StatusQueued, resp.Status)
	assert.NotEmpty(t, resp.RequestID)
	assert.Empty(t, deps.repo.rows)
}

func TestPayslipService_PDF(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()
	empl := grace()
	p := payslip.Payslip{ID: uuid.New(), PayslipNumber: "PS-000003", EmployeeID: empl.ID, Month: "May", Year: 2024}
	deps.repo.rows = append(deps.repo.rows, p)
	deps.employees.EXPECT().FindByID(gomock.Any(), empl.ID.String()).Return(empl, nil)

	doc, err := deps.service.PDF(context.Background(), p.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "payslip-Grace-Hopper-May-2024.pdf", doc.Filename)
	assert.Equal(t, "%PDF", string(doc.Data[:4]))

	_, err = deps.service.PDF(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
}

func TestComputeAmounts(t *testing.T) {
	got := payslip.ComputeAmounts(money.FromFloat(3333.33))

	assert.Equal(t, "333.33", got.Allowances.String())
	assert.Equal(t, "500.00", got.Deductions.String())
	assert.Equal(t, "3166.66", got.Net.String())
}
