package model

import "time"

// StockTransfer records an inter-warehouse move. Logically two linked
// mutations (debit source, credit destination) — both are applied in the
// transaction that creates this row, so the fact is never visible without
// its quantity effects.
type StockTransfer struct {
	ID              uint `gorm:"primaryKey"`
	ProductID       uint `gorm:"not null;index"`
	FromWarehouseID uint `gorm:"not null"`
	ToWarehouseID   uint `gorm:"not null"`
	Quantity        int  `gorm:"not null"`
	Reason          string
	OperatorID      uint `gorm:"not null"`
	CreatedAt       time.Time
}

func (StockTransfer) TableName() string { return "stock_transfers" }
