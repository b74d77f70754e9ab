package model

import (
	"time"

	"github.com/google/uuid"
)

// Sync queue item statuses. pending is the only non-terminal state:
// pending → synced on a successful replay, pending → failed once the retry
// budget is exhausted. Terminal rows are immutable history.
const (
	SyncStatusPending = "pending"
	SyncStatusSynced  = "synced"
	SyncStatusFailed  = "failed"
)

// Operation types accepted by the sync queue.
const (
	OpInbound  = "inbound"
	OpOutbound = "outbound"
	OpTransfer = "transfer"
)

// SyncQueueItem is a ledger operation captured while the caller was offline
// (or the ledger transiently unavailable), waiting to be replayed.
// ClientOpID deduplicates re-submissions of the same business operation from
// a reconnecting client.
type SyncQueueItem struct {
	ID            uint      `gorm:"primaryKey"`
	ClientOpID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	OperationType string    `gorm:"not null"`
	Payload       string    `gorm:"size:1000;not null"` // JSON-encoded operation
	Status        string    `gorm:"index;not null;default:'pending'"`
	RetryCount    int       `gorm:"not null;default:0"`
	CreatedAt     time.Time
	LastAttempt   *time.Time
}

func (SyncQueueItem) TableName() string { return "sync_queue" }
