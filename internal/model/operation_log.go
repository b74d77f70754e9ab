package model

import "time"

// OperationLog is the append-only audit trail for ledger mutations.
type OperationLog struct {
	ID            uint   `gorm:"primaryKey"`
	OperationType string `gorm:"index;not null"` // inbound | outbound | transfer
	Detail        string `gorm:"size:500"`
	OperatorID    uint   `gorm:"not null"`
	CreatedAt     time.Time
}

func (OperationLog) TableName() string { return "operation_logs" }
