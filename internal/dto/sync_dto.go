package dto

import "encoding/json"

// EnqueueSyncRequest captures an operation performed while the client was
// offline. ClientOpID deduplicates re-submissions of the same operation.
type EnqueueSyncRequest struct {
	OperationType string          `json:"operation_type" validate:"required,oneof=inbound outbound transfer"`
	ClientOpID    string          `json:"client_op_id" validate:"omitempty,uuid"`
	Payload       json.RawMessage `json:"payload" validate:"required"`
}

// SyncQueueItemResponse mirrors one queue row.
type SyncQueueItemResponse struct {
	ID            uint   `json:"id"`
	ClientOpID    string `json:"client_op_id"`
	OperationType string `json:"operation_type"`
	Status        string `json:"status"`
	RetryCount    int    `json:"retry_count"`
	CreatedAt     string `json:"created_at"`
	LastAttempt   string `json:"last_attempt,omitempty"`
}

// SyncResultResponse summarizes one drain pass.
type SyncResultResponse struct {
	Synced       int `json:"synced"`
	Failed       int `json:"failed"`
	StillPending int `json:"still_pending"`
}
