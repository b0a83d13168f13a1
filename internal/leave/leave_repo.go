package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/leave_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	List(ctx context.Context, employeeID, status string) ([]LeaveView, error)
	Decide(ctx context.Context, id, status, decidedBy string, at time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) List(ctx context.Context, employeeID, status string) ([]LeaveView, error) {
	db := r.conn(ctx).
		Table("leave_requests lr").
		Select("lr.*, e.first_name, e.last_name").
		Joins("JOIN employees e ON e.id = lr.employee_id")
	if employeeID != "" {
		db = db.Where("lr.employee_id = ?", employeeID)
	}
	if status != "" {
		db = db.Where("lr.status = ?", status)
	}

	var views []LeaveView
	err := db.Order("lr.created_at DESC").Scan(&views).Error
	return views, err
}

// Decide moves a pending request to status. It reports false when the row is
// no longer pending.
func (r *repository) Decide(ctx context.Context, id, status, decidedBy string, at time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&Leave{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": at,
			"updated_at": at,
		})
	return res.RowsAffected == 1, res.Error
}
