package worker

// Dead letter queue for sync items whose retry budget is exhausted.
// Entries land in a Redis list for manual inspection; nothing reads them
// back automatically.

import (
	"context"
	"encoding/json"
	"time"

	"stockward/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqKey = "dlq:sync_queue"

// DLQEntry wraps an exhausted queue item with metadata for debugging.
type DLQEntry struct {
	ItemID        uint            `json:"item_id"`
	ClientOpID    string          `json:"client_op_id"`
	OperationType string          `json:"operation_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // ISO 8601
	Attempts      int             `json:"attempts"`
}

// DLQ implements the sync service's dead letter sink on Redis.
type DLQ struct {
	rdb *redis.Client
}

func NewDLQ(rdb *redis.Client) *DLQ {
	return &DLQ{rdb: rdb}
}

// Send pushes an exhausted item to the dead letter list. Best-effort:
// failures are logged, never returned.
func (d *DLQ) Send(ctx context.Context, item *model.SyncQueueItem, reason string) {
	entry := DLQEntry{
		ItemID:        item.ID,
		ClientOpID:    item.ClientOpID.String(),
		OperationType: item.OperationType,
		Payload:       json.RawMessage(item.Payload),
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      item.RetryCount,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Uint("item_id", item.ID).Msg("dlq: failed to marshal entry")
		return
	}

	if err := d.rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Uint("item_id", item.ID).Msg("dlq: failed to push entry")
		return
	}

	log.Warn().
		Uint("item_id", item.ID).
		Str("operation_type", item.OperationType).
		Str("reason", reason).
		Int("attempts", item.RetryCount).
		Msg("dlq: sync item moved to dead letter queue")
}

// Length returns the number of dead-lettered items, for monitoring.
func (d *DLQ) Length(ctx context.Context) (int64, error) {
	return d.rdb.LLen(ctx, dlqKey).Result()
}
