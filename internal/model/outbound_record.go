package model

import "time"

// OutboundRecord is an immutable goods-issued fact, written inside the same
// transaction as the stock debit.
type OutboundRecord struct {
	ID          uint `gorm:"primaryKey"`
	ProductID   uint `gorm:"not null;index"`
	WarehouseID uint `gorm:"not null;index"`
	Quantity    int  `gorm:"not null"`
	OrderID     *string
	Reason      string
	OperatorID  uint `gorm:"not null"`
	CreatedAt   time.Time
}

func (OutboundRecord) TableName() string { return "outbound_records" }
