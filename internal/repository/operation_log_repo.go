package repository

import (
	"context"
	"time"

	"stockward/internal/model"

	"gorm.io/gorm"
)

// OperationLogFilter defines filters for listing audit entries.
type OperationLogFilter struct {
	OperationType string
	Start, End    *time.Time
	Limit         int
}

type OperationLogRepository interface {
	CreateTx(tx *gorm.DB, l *model.OperationLog) error
	List(ctx context.Context, filter OperationLogFilter) ([]model.OperationLog, error)
}

type operationLogRepo struct{ db *gorm.DB }

func NewOperationLogRepository(db *gorm.DB) OperationLogRepository {
	return &operationLogRepo{db: db}
}

func (r *operationLogRepo) CreateTx(tx *gorm.DB, l *model.OperationLog) error {
	return tx.Create(l).Error
}

func (r *operationLogRepo) List(ctx context.Context, filter OperationLogFilter) ([]model.OperationLog, error) {
	q := r.db.WithContext(ctx).Model(&model.OperationLog{})
	if filter.OperationType != "" {
		q = q.Where("operation_type = ?", filter.OperationType)
	}
	if filter.Start != nil {
		q = q.Where("created_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("created_at <= ?", *filter.End)
	}
	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var logs []model.OperationLog
	err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
