package taxdetails_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/towet/payroll-processing-sys/internal/employee"
	employeeerrors "github.com/towet/payroll-processing-sys/internal/employee/errors"
	employeeMock "github.com/towet/payroll-processing-sys/internal/employee/mock"
	"github.com/towet/payroll-processing-sys/internal/shared/money"
	"github.com/towet/payroll-processing-sys/internal/taxdetails"
	taxdetailserrors "github.com/towet/payroll-processing-sys/internal/taxdetails/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeRepo struct {
	UpsertFn func(ctx context.Context, d *taxdetails.EmployeeTaxDetails) error
	FindFn   func(ctx context.Context, employeeID string, year int) (*taxdetails.EmployeeTaxDetails, error)
	CountFn  func(ctx context.Context) (int64, error)
}

func (f *fakeRepo) Upsert(ctx context.Context, d *taxdetails.EmployeeTaxDetails) error {
	return f.UpsertFn(ctx, d)
}
func (f *fakeRepo) Find(ctx context.Context, employeeID string, year int) (*taxdetails.EmployeeTaxDetails, error) {
	return f.FindFn(ctx, employeeID, year)
}
func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return f.CountFn(ctx)
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
}

func TestTaxDetailsService_Upsert(t *testing.T) {
	ctx := context.Background()
	empID := uuid.New()

	t.Run("defaults year to the clock's and reloads", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		employees := employeeMock.NewMockRepository(ctrl)
		employees.EXPECT().FindByID(ctx, empID.String()).Return(&employee.Employee{ID: empID}, nil)

		var stored taxdetails.EmployeeTaxDetails
		existingID := uuid.New()
		repo := &fakeRepo{
			UpsertFn: func(ctx context.Context, d *taxdetails.EmployeeTaxDetails) error {
				assert.Equal(t, 2025, d.TaxYear)
				assert.Nil(t, d.Locality)
				stored = *d
				return nil
			},
			FindFn: func(ctx context.Context, employeeID string, year int) (*taxdetails.EmployeeTaxDetails, error) {
				assert.Equal(t, 2025, year)
				row := stored
				// conflict path keeps the original id
				row.ID = existingID
				return &row, nil
			},
		}
		svc := taxdetails.NewService(repo, employees, fixedClock)

		resp, err := svc.Upsert(ctx, empID.String(), taxdetails.UpsertTaxDetailsRequest{
			FilingStatus:          taxdetails.FilingMarriedJoint,
			Allowances:            2,
			AdditionalWithholding: money.FromFloat(25),
			StateCode:             "CA",
		})

		assert.NoError(t, err)
		assert.Equal(t, existingID.String(), resp.ID)
		assert.Equal(t, 2025, resp.TaxYear)
		assert.Equal(t, "CA", *resp.StateCode)
		assert.Equal(t, "25.00", resp.AdditionalWithholding.String())
	})

	t.Run("unknown employee", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		employees := employeeMock.NewMockRepository(ctrl)
		employees.EXPECT().FindByID(ctx, empID.String()).Return(nil, gorm.ErrRecordNotFound)

		svc := taxdetails.NewService(&fakeRepo{}, employees, fixedClock)
		_, err := svc.Upsert(ctx, empID.String(), taxdetails.UpsertTaxDetailsRequest{FilingStatus: taxdetails.FilingSingle})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("persist failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		employees := employeeMock.NewMockRepository(ctrl)
		employees.EXPECT().FindByID(ctx, empID.String()).Return(&employee.Employee{ID: empID}, nil)

		repo := &fakeRepo{
			UpsertFn: func(ctx context.Context, d *taxdetails.EmployeeTaxDetails) error {
				return errors.New("deadlock detected")
			},
		}
		svc := taxdetails.NewService(repo, employees, fixedClock)
		_, err := svc.Upsert(ctx, empID.String(), taxdetails.UpsertTaxDetailsRequest{TaxYear: 2024, FilingStatus: taxdetails.FilingSingle})

		assert.EqualError(t, err, "deadlock detected")
	})

	t.Run("invalid employee id", func(t *testing.T) {
		svc := taxdetails.NewService(&fakeRepo{}, nil, fixedClock)
		_, err := svc.Upsert(ctx, "abc", taxdetails.UpsertTaxDetailsRequest{})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestTaxDetailsService_Get(t *testing.T) {
	ctx := context.Background()
	empID := uuid.NewString()

	repo := &fakeRepo{
		FindFn: func(ctx context.Context, employeeID string, year int) (*taxdetails.EmployeeTaxDetails, error) {
			if year == 2025 {
				return &taxdetails.EmployeeTaxDetails{ID: uuid.New(), TaxYear: year, FilingStatus: taxdetails.FilingSingle}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := taxdetails.NewService(repo, nil, fixedClock)

	resp, err := svc.Get(ctx, empID, 0)
	assert.NoError(t, err)
	assert.Equal(t, 2025, resp.TaxYear)

	_, err = svc.Get(ctx, empID, 2023)
	assert.ErrorIs(t, err, taxdetailserrors.ErrTaxDetailsNotFound)
}
