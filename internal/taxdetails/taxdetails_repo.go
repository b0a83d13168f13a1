package taxdetails

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Upsert(ctx context.Context, d *EmployeeTaxDetails) error
	Find(ctx context.Context, employeeID string, year int) (*EmployeeTaxDetails, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert keeps the existing row id and created_at when (employee_id, tax_year) already exists.
func (r *repository) Upsert(ctx context.Context, d *EmployeeTaxDetails) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "tax_year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"filing_status",
				"allowances",
				"additional_withholding",
				"state_code",
				"locality",
				"updated_at",
			}),
		}).
		Create(d).Error
}

func (r *repository) Find(ctx context.Context, employeeID string, year int) (*EmployeeTaxDetails, error) {
	var d EmployeeTaxDetails
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND tax_year = ?", employeeID, year).
		First(&d).Error
	return &d, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&EmployeeTaxDetails{}).Count(&n).Error
	return n, err
}
