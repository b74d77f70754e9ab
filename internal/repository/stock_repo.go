package repository

import (
	"context"
	"errors"
	"time"

	"stockward/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockNotFound is returned when no stock row exists for a key.
var ErrStockNotFound = errors.New("stock record not found")

// StockRepository is the data access contract for stock rows. Quantity
// writes only happen through the *Tx methods, inside a ledger transaction
// that holds the row lock.
type StockRepository interface {
	FindByKey(ctx context.Context, productID, warehouseID uint) (*model.Stock, error)
	ListByProduct(ctx context.Context, productID uint) ([]model.Stock, error)
	ListWithProduct(ctx context.Context) ([]model.Stock, error)
	ListExpiringBefore(ctx context.Context, t time.Time) ([]model.Stock, error)

	// Used inside ledger transactions — callers must pass the tx instance.
	// FindByKeyForUpdate takes a FOR UPDATE row lock; a nil result with a
	// nil error means the key has no record yet.
	FindByKeyForUpdate(tx *gorm.DB, productID, warehouseID uint) (*model.Stock, error)
	CreateTx(tx *gorm.DB, s *model.Stock) error
	SetQuantityTx(tx *gorm.DB, id uint, quantity int) error

	// DB exposes the underlying *gorm.DB so the ledger can open transactions.
	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) FindByKey(ctx context.Context, productID, warehouseID uint) (*model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStockNotFound
	}
	return &s, err
}

func (r *stockRepo) ListByProduct(ctx context.Context, productID uint) ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.WithContext(ctx).
		Preload("Warehouse").
		Where("product_id = ?", productID).
		Find(&stocks).Error
	return stocks, err
}

func (r *stockRepo) ListWithProduct(ctx context.Context) ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Warehouse").
		Find(&stocks).Error
	return stocks, err
}

func (r *stockRepo) ListExpiringBefore(ctx context.Context, t time.Time) ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Warehouse").
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", t).
		Find(&stocks).Error
	return stocks, err
}

func (r *stockRepo) FindByKeyForUpdate(tx *gorm.DB, productID, warehouseID uint) (*model.Stock, error) {
	var s model.Stock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepo) CreateTx(tx *gorm.DB, s *model.Stock) error {
	return tx.Create(s).Error
}

func (r *stockRepo) SetQuantityTx(tx *gorm.DB, id uint, quantity int) error {
	return tx.Model(&model.Stock{}).Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *stockRepo) DB() *gorm.DB { return r.db }
