package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/towet/payroll-processing-sys/internal/shared/dbtx"
	"github.com/towet/payroll-processing-sys/internal/worktime"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Insert(ctx context.Context, a *Attendance) (bool, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	SetTimeOut(ctx context.Context, id string, at time.Time) (bool, error)
	List(ctx context.Context, employeeID string, date *time.Time) ([]AttendanceView, error)
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

// Insert adds a row unless one already exists for (employee_id, date). It
// reports whether this call created the row.
func (r *repository) Insert(ctx context.Context, a *Attendance) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(a)
	return res.RowsAffected == 1, res.Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date.Format(worktime.DateLayout)).
		First(&a).Error
	return &a, err
}

func (r *repository) SetTimeOut(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&Attendance{}).
		Where("id = ? AND time_out IS NULL", id).
		Updates(map[string]interface{}{"time_out": at, "updated_at": at})
	return res.RowsAffected == 1, res.Error
}

func (r *repository) List(ctx context.Context, employeeID string, date *time.Time) ([]AttendanceView, error) {
	db := r.conn(ctx).
		Table("attendance a").
		Select("a.*, e.first_name, e.last_name").
		Joins("JOIN employees e ON e.id = a.employee_id")
	if employeeID != "" {
		db = db.Where("a.employee_id = ?", employeeID)
	}
	if date != nil {
		db = db.Where("a.date = ?", date.Format(worktime.DateLayout))
	}

	var views []AttendanceView
	err := db.Order("a.date DESC, a.time_in DESC").Scan(&views).Error
	return views, err
}
