package taxrate

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListByType(ctx context.Context, taxType string) ([]TaxRate, error)
	ListAll(ctx context.Context) ([]TaxRate, error)
	ReplaceYear(ctx context.Context, year int, rates []TaxRate) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListByType ignores tax_year: brackets of every year are candidates.
func (r *repository) ListByType(ctx context.Context, taxType string) ([]TaxRate, error) {
	var rates []TaxRate
	err := r.db.WithContext(ctx).
		Where("tax_type = ?", taxType).
		Order("income_from ASC").
		Find(&rates).Error
	return rates, err
}

func (r *repository) ListAll(ctx context.Context) ([]TaxRate, error) {
	var rates []TaxRate
	err := r.db.WithContext(ctx).
		Order("tax_year DESC, tax_type ASC, income_from ASC").
		Find(&rates).Error
	return rates, err
}

func (r *repository) ReplaceYear(ctx context.Context, year int, rates []TaxRate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tax_year = ?", year).Delete(&TaxRate{}).Error; err != nil {
			return err
		}
		if len(rates) == 0 {
			return nil
		}
		return tx.CreateInBatches(rates, 100).Error
	})
}
