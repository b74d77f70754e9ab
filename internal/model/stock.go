package model

import "time"

// Stock is the authoritative quantity per (product, warehouse).
// Invariant: Quantity >= 0 at all times; at most one row per key (created on
// first inbound or transfer-in, never deleted, quantity may reach 0).
// Rows are mutated exclusively through the stock ledger — no other component
// writes Quantity.
type Stock struct {
	ID          uint `gorm:"primaryKey"`
	ProductID   uint `gorm:"not null;uniqueIndex:idx_stock_key"`
	WarehouseID uint `gorm:"not null;uniqueIndex:idx_stock_key"`
	Quantity    int  `gorm:"not null;default:0"`
	ShelfNumber string
	ExpiryDate  *time.Time

	Product   *Product   `gorm:"foreignKey:ProductID"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}

func (Stock) TableName() string { return "stocks" }
