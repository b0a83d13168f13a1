package taxdetails

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/towet/payroll-processing-sys/internal/employee"
	employeeerrors "github.com/towet/payroll-processing-sys/internal/employee/errors"
	taxdetailserrors "github.com/towet/payroll-processing-sys/internal/taxdetails/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeFinder is the part of the employee repository this package needs.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

type Service interface {
	Upsert(ctx context.Context, employeeID string, req UpsertTaxDetailsRequest) (TaxDetailsResponse, error)
	Get(ctx context.Context, employeeID string, year int) (TaxDetailsResponse, error)
}

type service struct {
	repo      Repository
	employees EmployeeFinder
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, employees EmployeeFinder, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("taxdetails.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("taxdetails.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, employees: employees, now: now, logger: l}
}

// Upsert writes then re-reads. The two steps do not share a transaction.
func (s *service) Upsert(ctx context.Context, employeeID string, req UpsertTaxDetailsRequest) (TaxDetailsResponse, error) {
	s.logger.Debug("upsert tax details requested",
		zap.String("employee_id", employeeID),
		zap.Int("tax_year", req.TaxYear),
	)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return TaxDetailsResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("upsert tax details unknown employee", zap.String("employee_id", employeeID))
			return TaxDetailsResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return TaxDetailsResponse{}, err
	}

	year := req.TaxYear
	if year == 0 {
		year = s.now().Year()
	}

	now := s.now().UTC()
	d := &EmployeeTaxDetails{
		ID:                    uuid.New(),
		EmployeeID:            empID,
		TaxYear:               year,
		FilingStatus:          req.FilingStatus,
		Allowances:            req.Allowances,
		AdditionalWithholding: req.AdditionalWithholding,
		StateCode:             optional(req.StateCode),
		Locality:              optional(req.Locality),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Upsert(ctx, d); err != nil {
		s.logger.Error("upsert tax details persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return TaxDetailsResponse{}, err
	}

	saved, err := s.repo.Find(ctx, employeeID, year)
	if err != nil {
		s.logger.Error("upsert tax details reload failed", zap.String("employee_id", employeeID), zap.Error(err))
		return TaxDetailsResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("upsert tax details success",
		zap.String("employee_id", employeeID),
		zap.Int("tax_year", year),
	)
	return mapToResponse(*saved), nil
}

func (s *service) Get(ctx context.Context, employeeID string, year int) (TaxDetailsResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TaxDetailsResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if year == 0 {
		year = s.now().Year()
	}

	d, err := s.repo.Find(ctx, employeeID, year)
	if err != nil {
		return TaxDetailsResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taxdetailserrors.ErrTaxDetailsNotFound
	}
	return err
}

func mapToResponse(d EmployeeTaxDetails) TaxDetailsResponse {
	return TaxDetailsResponse{
		ID:                    d.ID.String(),
		EmployeeID:            d.EmployeeID.String(),
		TaxYear:               d.TaxYear,
		FilingStatus:          d.FilingStatus,
		Allowances:            d.Allowances,
		AdditionalWithholding: d.AdditionalWithholding,
		StateCode:             d.StateCode,
		Locality:              d.Locality,
		UpdatedAt:             d.UpdatedAt.Format(time.RFC3339),
	}
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
