package repository

import (
	"context"
	"errors"

	"stockward/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncQueueRepository owns the sync_queue table. Pending items are listed in
// insertion order so replays preserve the causal order of operations against
// the same stock key.
type SyncQueueRepository interface {
	Create(ctx context.Context, item *model.SyncQueueItem) error
	FindByClientOpID(ctx context.Context, id uuid.UUID) (*model.SyncQueueItem, error)
	ListPending(ctx context.Context, maxRetries int) ([]model.SyncQueueItem, error)
	Update(ctx context.Context, item *model.SyncQueueItem) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type syncQueueRepo struct{ db *gorm.DB }

func NewSyncQueueRepository(db *gorm.DB) SyncQueueRepository { return &syncQueueRepo{db: db} }

func (r *syncQueueRepo) Create(ctx context.Context, item *model.SyncQueueItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *syncQueueRepo) FindByClientOpID(ctx context.Context, id uuid.UUID) (*model.SyncQueueItem, error) {
	var item model.SyncQueueItem
	err := r.db.WithContext(ctx).Where("client_op_id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *syncQueueRepo) ListPending(ctx context.Context, maxRetries int) ([]model.SyncQueueItem, error) {
	var items []model.SyncQueueItem
	err := r.db.WithContext(ctx).
		Where("status = ? AND retry_count < ?", model.SyncStatusPending, maxRetries).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *syncQueueRepo) Update(ctx context.Context, item *model.SyncQueueItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *syncQueueRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SyncQueueItem{}).
		Where("status = ?", status).Count(&n).Error
	return n, err
}
