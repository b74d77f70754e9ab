package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog entry shared across all warehouses.
// MinStock is the per-product low-stock alert threshold — physical quantities
// live in Stock rows, one per (product, warehouse).
type Product struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"index;not null"`
	Barcode   string `gorm:"uniqueIndex;not null"`
	Category  string
	Unit      string
	Price     decimal.Decimal `gorm:"type:decimal(10,2)"`
	MinStock  int             `gorm:"not null;default:0"`
	CreatedAt time.Time
}
