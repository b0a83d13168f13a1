package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Record(ctx context.Context, entry ActivityEntry) error
	ListRecent(ctx context.Context, limit int) ([]ActivityLog, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Record(ctx context.Context, entry ActivityEntry) error {
	row := ActivityLog{
		ID:          uuid.New(),
		Type:        entry.Type,
		Description: entry.Description,
		ReferenceID: entry.ReferenceID,
		Actor:       entry.Actor,
		OccurredAt:  entry.OccurredAt,
		CreatedAt:   time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]ActivityLog, error) {
	var rows []ActivityLog
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
