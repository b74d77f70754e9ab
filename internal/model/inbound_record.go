package model

import "time"

// InboundRecord is an immutable goods-received fact. Created once inside the
// same transaction as the stock credit; never updated afterwards.
type InboundRecord struct {
	ID             uint `gorm:"primaryKey"`
	ProductID      uint `gorm:"not null;index"`
	WarehouseID    uint `gorm:"not null;index"`
	SupplierID     uint `gorm:"not null"`
	Quantity       int  `gorm:"not null"`
	BatchNumber    string
	ProductionDate time.Time
	ExpiryDate     time.Time
	OperatorID     uint `gorm:"not null"`
	CreatedAt      time.Time
}

func (InboundRecord) TableName() string { return "inbound_records" }
