package repository

import (
	"context"
	"time"

	"stockward/internal/model"

	"gorm.io/gorm"
)

// The three fact repositories below are append-only: rows are created inside
// ledger transactions and never updated or deleted afterwards.

type InboundRepository interface {
	CreateTx(tx *gorm.DB, rec *model.InboundRecord) error
	ListBetween(ctx context.Context, start, end time.Time) ([]model.InboundRecord, error)
}

type inboundRepo struct{ db *gorm.DB }

func NewInboundRepository(db *gorm.DB) InboundRepository { return &inboundRepo{db: db} }

func (r *inboundRepo) CreateTx(tx *gorm.DB, rec *model.InboundRecord) error {
	return tx.Create(rec).Error
}

func (r *inboundRepo) ListBetween(ctx context.Context, start, end time.Time) ([]model.InboundRecord, error) {
	var recs []model.InboundRecord
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}

type OutboundRepository interface {
	CreateTx(tx *gorm.DB, rec *model.OutboundRecord) error
	ListBetween(ctx context.Context, start, end time.Time) ([]model.OutboundRecord, error)
}

type outboundRepo struct{ db *gorm.DB }

func NewOutboundRepository(db *gorm.DB) OutboundRepository { return &outboundRepo{db: db} }

func (r *outboundRepo) CreateTx(tx *gorm.DB, rec *model.OutboundRecord) error {
	return tx.Create(rec).Error
}

func (r *outboundRepo) ListBetween(ctx context.Context, start, end time.Time) ([]model.OutboundRecord, error) {
	var recs []model.OutboundRecord
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}

type TransferRepository interface {
	CreateTx(tx *gorm.DB, rec *model.StockTransfer) error
	ListBetween(ctx context.Context, start, end time.Time) ([]model.StockTransfer, error)
}

type transferRepo struct{ db *gorm.DB }

func NewTransferRepository(db *gorm.DB) TransferRepository { return &transferRepo{db: db} }

func (r *transferRepo) CreateTx(tx *gorm.DB, rec *model.StockTransfer) error {
	return tx.Create(rec).Error
}

func (r *transferRepo) ListBetween(ctx context.Context, start, end time.Time) ([]model.StockTransfer, error) {
	var recs []model.StockTransfer
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}
