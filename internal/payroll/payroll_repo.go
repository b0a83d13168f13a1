package payroll

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/dbtx"

	"gorm.io/gorm"
)

// HistoryQuery is a validated HistoryFilter.
type HistoryQuery struct {
	EmployeeID string
	Search     string
	From       *time.Time
	To         *time.Time
	SortBy     string
	Desc       bool
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreatePeriod(ctx context.Context, period *PayrollPeriod) error
	CreateItem(ctx context.Context, item *PayrollItem) error
	FindPeriodByID(ctx context.Context, id string) (*PayrollPeriod, error)
	ListPeriods(ctx context.Context, status string) ([]PayrollPeriod, error)
	UpdatePeriodStatus(ctx context.Context, id, from, to string) (bool, error)
	UpdateItemsStatus(ctx context.Context, periodID, status string) error
	FindHistory(ctx context.Context, q HistoryQuery) ([]PayrollHistoryItem, error)
	FindHistoryItem(ctx context.Context, itemID string) (*PayrollHistoryItem, error)
	CountPeriodsByStatus(ctx context.Context, status string) (int64, error)
	NextPendingPeriod(ctx context.Context) (*PayrollPeriod, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) CreatePeriod(ctx context.Context, period *PayrollPeriod) error {
	return r.conn(ctx).Create(period).Error
}

func (r *repository) CreateItem(ctx context.Context, item *PayrollItem) error {
	return r.conn(ctx).Create(item).Error
}

func (r *repository) FindPeriodByID(ctx context.Context, id string) (*PayrollPeriod, error) {
	var period PayrollPeriod
	err := r.conn(ctx).First(&period, "id = ?", id).Error
	return &period, err
}

func (r *repository) ListPeriods(ctx context.Context, status string) ([]PayrollPeriod, error) {
	var periods []PayrollPeriod
	db := r.conn(ctx).Order("period_start DESC")
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Find(&periods).Error
	return periods, err
}

// UpdatePeriodStatus only moves a period still in status from; false means it had moved on.
func (r *repository) UpdatePeriodStatus(ctx context.Context, id, from, to string) (bool, error) {
	res := r.conn(ctx).
		Model(&PayrollPeriod{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now().UTC()})
	return res.RowsAffected == 1, res.Error
}

func (r *repository) UpdateItemsStatus(ctx context.Context, periodID, status string) error {
	return r.conn(ctx).
		Model(&PayrollItem{}).
		Where("period_id = ?", periodID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now().UTC()}).Error
}

func (r *repository) historyBase(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Table("payroll_items pi").
		Select("pi.*, pp.period_start, pp.period_end, e.first_name, e.last_name, e.department, e.position").
		Joins("JOIN payroll_periods pp ON pp.id = pi.period_id").
		Joins("JOIN employees e ON e.id = pi.employee_id")
}

func (r *repository) FindHistory(ctx context.Context, q HistoryQuery) ([]PayrollHistoryItem, error) {
	db := r.historyBase(ctx)

	if q.EmployeeID != "" {
		db = db.Where("pi.employee_id = ?", q.EmployeeID)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where(
			"LOWER(e.first_name) LIKE ? OR LOWER(e.last_name) LIKE ? OR LOWER(e.department) LIKE ? OR LOWER(e.position) LIKE ?",
			like, like, like, like,
		)
	}
	if q.From != nil && q.To != nil {
		db = db.Where("pp.period_start >= ? AND pp.period_start < ?", *q.From, *q.To)
	}

	column, ok := historySortColumns[q.SortBy]
	if !ok {
		column = historySortColumns["created_at"]
	}
	if q.Desc {
		column += " DESC"
	} else {
		column += " ASC"
	}

	var items []PayrollHistoryItem
	err := db.Order(column).Scan(&items).Error
	return items, err
}

func (r *repository) FindHistoryItem(ctx context.Context, itemID string) (*PayrollHistoryItem, error) {
	var items []PayrollHistoryItem
	err := r.historyBase(ctx).Where("pi.id = ?", itemID).Limit(1).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &items[0], nil
}

func (r *repository) CountPeriodsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&PayrollPeriod{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// NextPendingPeriod returns nil without error when nothing is pending.
func (r *repository) NextPendingPeriod(ctx context.Context) (*PayrollPeriod, error) {
	var period PayrollPeriod
	err := r.conn(ctx).
		Where("status = ?", StatusPending).
		Order("period_start ASC").
		First(&period).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &period, nil
}
