package payslip

import (
	"context"
	"database/sql"

	"github.com/towet/payroll-processing-sys/internal/shared/dbtx"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payslip) error
	FindByID(ctx context.Context, id string) (*Payslip, error)
	List(ctx context.Context, employeeID string) ([]Payslip, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

// Create always inserts; two calls for the same employee and month give two rows.
func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var p Payslip
	err := r.conn(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) List(ctx context.Context, employeeID string) ([]Payslip, error) {
	var payslips []Payslip
	db := r.conn(ctx).Order("generated_date DESC")
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}
	err := db.Find(&payslips).Error
	return payslips, err
}
