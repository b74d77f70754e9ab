package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockward/internal/dto"
	"stockward/internal/model"
	"stockward/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxSyncRetries is the retry budget per queue item. An item that fails this
// many replay attempts is marked failed and never retried automatically.
const MaxSyncRetries = 3

// DeadLetter receives queue items whose retry budget is exhausted, for
// manual inspection. Best-effort — a nil or failing dead letter sink never
// affects queue processing.
type DeadLetter interface {
	Send(ctx context.Context, item *model.SyncQueueItem, reason string)
}

// SyncResult summarizes one drain pass.
type SyncResult struct {
	Synced       int
	Failed       int
	StillPending int
}

// SyncService owns the offline-operation queue: operations that could not be
// applied immediately are persisted here and replayed through the ledger
// with bounded retries.
type SyncService interface {
	EnqueueOffline(ctx context.Context, req dto.EnqueueSyncRequest) (*model.SyncQueueItem, error)
	Process(ctx context.Context) (*SyncResult, error)
}

// Replay payloads carry the operator explicitly: by replay time the original
// caller has long since disconnected.
type syncInboundPayload struct {
	dto.InboundRequest
	OperatorID uint `json:"operator_id"`
}

type syncOutboundPayload struct {
	dto.OutboundRequest
	OperatorID uint `json:"operator_id"`
}

type syncTransferPayload struct {
	dto.TransferRequest
	OperatorID uint `json:"operator_id"`
}

type syncService struct {
	repo   repository.SyncQueueRepository
	ledger StockLedger
	dlq    DeadLetter
	now    func() time.Time
}

func NewSyncService(repo repository.SyncQueueRepository, ledger StockLedger, dlq DeadLetter) SyncService {
	return &syncService{repo: repo, ledger: ledger, dlq: dlq, now: time.Now}
}

// EnqueueOffline persists an operation for later replay. A re-submission
// with a known client operation id returns the existing item instead of
// queuing a duplicate.
func (s *syncService) EnqueueOffline(ctx context.Context, req dto.EnqueueSyncRequest) (*model.SyncQueueItem, error) {
	clientOpID := uuid.New()
	if req.ClientOpID != "" {
		parsed, err := uuid.Parse(req.ClientOpID)
		if err != nil {
			return nil, fmt.Errorf("invalid client_op_id: %w", err)
		}
		clientOpID = parsed

		existing, err := s.repo.FindByClientOpID(ctx, clientOpID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	item := &model.SyncQueueItem{
		ClientOpID:    clientOpID,
		OperationType: req.OperationType,
		Payload:       string(req.Payload),
		Status:        model.SyncStatusPending,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	log.Info().
		Uint("item_id", item.ID).
		Str("operation_type", item.OperationType).
		Msg("sync: offline operation queued")
	return item, nil
}

// Process drains all pending items with remaining retry budget, oldest
// first. Success transitions an item to synced; any failure (including
// business-rule rejections like insufficient stock) consumes one retry, and
// the third consecutive failure is terminal. Synced and failed items are
// excluded from future passes.
func (s *syncService) Process(ctx context.Context) (*SyncResult, error) {
	items, err := s.repo.ListPending(ctx, MaxSyncRetries)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	for i := range items {
		item := &items[i]
		now := s.now()
		item.LastAttempt = &now

		if replayErr := s.replay(ctx, item); replayErr != nil {
			item.RetryCount++
			if item.RetryCount >= MaxSyncRetries {
				item.Status = model.SyncStatusFailed
				result.Failed++
				log.Error().
					Uint("item_id", item.ID).
					Str("operation_type", item.OperationType).
					Err(replayErr).
					Msg("sync: retries exhausted, item failed")
				if s.dlq != nil {
					s.dlq.Send(ctx, item, replayErr.Error())
				}
			} else {
				result.StillPending++
				log.Warn().
					Uint("item_id", item.ID).
					Int("retry_count", item.RetryCount).
					Err(replayErr).
					Msg("sync: replay failed, will retry")
			}
		} else {
			item.Status = model.SyncStatusSynced
			result.Synced++
		}

		if err := s.repo.Update(ctx, item); err != nil {
			log.Error().Err(err).Uint("item_id", item.ID).Msg("sync: failed to persist item state")
		}
	}

	if result.Synced > 0 || result.Failed > 0 {
		log.Info().
			Int("synced", result.Synced).
			Int("failed", result.Failed).
			Int("still_pending", result.StillPending).
			Msg("sync: drain pass complete")
	}
	return result, nil
}

func (s *syncService) replay(ctx context.Context, item *model.SyncQueueItem) error {
	switch item.OperationType {
	case model.OpInbound:
		var p syncInboundPayload
		if err := json.Unmarshal([]byte(item.Payload), &p); err != nil {
			return fmt.Errorf("decode inbound payload: %w", err)
		}
		_, err := s.ledger.Inbound(ctx, p.InboundRequest, p.OperatorID)
		return err
	case model.OpOutbound:
		var p syncOutboundPayload
		if err := json.Unmarshal([]byte(item.Payload), &p); err != nil {
			return fmt.Errorf("decode outbound payload: %w", err)
		}
		_, err := s.ledger.Outbound(ctx, p.OutboundRequest, p.OperatorID)
		return err
	case model.OpTransfer:
		var p syncTransferPayload
		if err := json.Unmarshal([]byte(item.Payload), &p); err != nil {
			return fmt.Errorf("decode transfer payload: %w", err)
		}
		_, err := s.ledger.Transfer(ctx, p.TransferRequest, p.OperatorID)
		return err
	default:
		return fmt.Errorf("unknown operation type %q", item.OperationType)
	}
}
