package service

import (
	"context"
	"errors"
	"fmt"

	"stockward/internal/alert"
	"stockward/internal/dto"
	"stockward/internal/infra"
	"stockward/internal/model"
	"stockward/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AlertSink receives alert events raised by ledger mutations. Delivery is
// best-effort and decoupled — a sink must never block the caller.
type AlertSink interface {
	Dispatch(ev alert.Event)
}

// StockLedger is the authoritative writer of stock quantities. Every
// operation validates, mutates, and records its audit fact in one atomic
// unit; quantity can never go negative.
type StockLedger interface {
	Inbound(ctx context.Context, req dto.InboundRequest, operatorID uint) (*model.InboundRecord, error)
	Outbound(ctx context.Context, req dto.OutboundRequest, operatorID uint) (*model.OutboundRecord, error)
	Transfer(ctx context.Context, req dto.TransferRequest, operatorID uint) (*model.StockTransfer, error)
}

type ledgerService struct {
	stocks    repository.StockRepository
	inbounds  repository.InboundRepository
	outbounds repository.OutboundRepository
	transfers repository.TransferRepository
	logs      repository.OperationLogRepository
	products  repository.ProductRepository

	evaluator *alert.Evaluator
	alerts    AlertSink
	cache     infra.Cache

	locks *keyLocks
}

// NewStockLedger wires the ledger. evaluator, alerts, and cache may be nil —
// threshold alerting and cache invalidation are then skipped.
func NewStockLedger(
	stocks repository.StockRepository,
	inbounds repository.InboundRepository,
	outbounds repository.OutboundRepository,
	transfers repository.TransferRepository,
	logs repository.OperationLogRepository,
	products repository.ProductRepository,
	evaluator *alert.Evaluator,
	alerts AlertSink,
	cache infra.Cache,
) StockLedger {
	return &ledgerService{
		stocks:    stocks,
		inbounds:  inbounds,
		outbounds: outbounds,
		transfers: transfers,
		logs:      logs,
		products:  products,
		evaluator: evaluator,
		alerts:    alerts,
		cache:     cache,
		locks:     newKeyLocks(),
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ProductStockCacheKey is the cache key for a product's stock listing.
// Ledger mutations invalidate it; the stock query service populates it.
func ProductStockCacheKey(productID uint) string {
	return fmt.Sprintf("stock:product:%d", productID)
}

func (s *ledgerService) Inbound(ctx context.Context, req dto.InboundRequest, operatorID uint) (*model.InboundRecord, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	key := stockKey{req.ProductID, req.WarehouseID}
	mu := s.locks.get(key)
	mu.Lock()
	defer mu.Unlock()

	var rec model.InboundRecord
	var snapshot model.Stock

	err := runTx(ctx, s.stocks.DB(), func(tx *gorm.DB) error {
		st, err := s.stocks.FindByKeyForUpdate(tx, req.ProductID, req.WarehouseID)
		if err != nil {
			return err
		}
		if st == nil {
			st = &model.Stock{
				ProductID:   req.ProductID,
				WarehouseID: req.WarehouseID,
				Quantity:    req.Quantity,
			}
			if !req.ExpiryDate.IsZero() {
				expiry := req.ExpiryDate
				st.ExpiryDate = &expiry
			}
			if err := s.stocks.CreateTx(tx, st); err != nil {
				return err
			}
		} else {
			st.Quantity += req.Quantity
			if err := s.stocks.SetQuantityTx(tx, st.ID, st.Quantity); err != nil {
				return err
			}
		}

		rec = model.InboundRecord{
			ProductID:      req.ProductID,
			WarehouseID:    req.WarehouseID,
			SupplierID:     req.SupplierID,
			Quantity:       req.Quantity,
			BatchNumber:    req.BatchNumber,
			ProductionDate: req.ProductionDate,
			ExpiryDate:     req.ExpiryDate,
			OperatorID:     operatorID,
		}
		if err := s.inbounds.CreateTx(tx, &rec); err != nil {
			return err
		}

		snapshot = *st
		return s.logs.CreateTx(tx, &model.OperationLog{
			OperationType: model.OpInbound,
			Detail:        fmt.Sprintf("product %d inbound at warehouse %d, quantity %d", req.ProductID, req.WarehouseID, req.Quantity),
			OperatorID:    operatorID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, &snapshot)
	return &rec, nil
}

func (s *ledgerService) Outbound(ctx context.Context, req dto.OutboundRequest, operatorID uint) (*model.OutboundRecord, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	key := stockKey{req.ProductID, req.WarehouseID}
	mu := s.locks.get(key)
	mu.Lock()
	defer mu.Unlock()

	var rec model.OutboundRecord
	var snapshot model.Stock

	err := runTx(ctx, s.stocks.DB(), func(tx *gorm.DB) error {
		st, err := s.stocks.FindByKeyForUpdate(tx, req.ProductID, req.WarehouseID)
		if err != nil {
			return err
		}
		// All-or-nothing: no partial fulfillment.
		if st == nil || st.Quantity < req.Quantity {
			return ErrInsufficientStock
		}

		st.Quantity -= req.Quantity
		if err := s.stocks.SetQuantityTx(tx, st.ID, st.Quantity); err != nil {
			return err
		}

		rec = model.OutboundRecord{
			ProductID:   req.ProductID,
			WarehouseID: req.WarehouseID,
			Quantity:    req.Quantity,
			OrderID:     req.OrderID,
			Reason:      req.Reason,
			OperatorID:  operatorID,
		}
		if err := s.outbounds.CreateTx(tx, &rec); err != nil {
			return err
		}

		snapshot = *st
		return s.logs.CreateTx(tx, &model.OperationLog{
			OperationType: model.OpOutbound,
			Detail:        fmt.Sprintf("product %d outbound at warehouse %d, quantity %d", req.ProductID, req.WarehouseID, req.Quantity),
			OperatorID:    operatorID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, &snapshot)
	return &rec, nil
}

func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest, operatorID uint) (*model.StockTransfer, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if req.FromWarehouseID == req.ToWarehouseID {
		return nil, errors.New("transfer requires two distinct warehouses")
	}

	srcKey := stockKey{req.ProductID, req.FromWarehouseID}
	dstKey := stockKey{req.ProductID, req.ToWarehouseID}
	unlock := s.locks.lockPair(srcKey, dstKey)
	defer unlock()

	var rec model.StockTransfer
	var srcSnap, dstSnap model.Stock

	// Debit and credit live in one transaction: no observer may see the
	// debit applied without the corresponding credit, or vice versa.
	err := runTx(ctx, s.stocks.DB(), func(tx *gorm.DB) error {
		src, err := s.stocks.FindByKeyForUpdate(tx, req.ProductID, req.FromWarehouseID)
		if err != nil {
			return err
		}
		if src == nil || src.Quantity < req.Quantity {
			return ErrInsufficientStock
		}

		src.Quantity -= req.Quantity
		if err := s.stocks.SetQuantityTx(tx, src.ID, src.Quantity); err != nil {
			return err
		}

		dst, err := s.stocks.FindByKeyForUpdate(tx, req.ProductID, req.ToWarehouseID)
		if err != nil {
			return err
		}
		if dst == nil {
			// New destination record inherits the source expiry as of now.
			dst = &model.Stock{
				ProductID:   req.ProductID,
				WarehouseID: req.ToWarehouseID,
				Quantity:    req.Quantity,
				ExpiryDate:  src.ExpiryDate,
			}
			if err := s.stocks.CreateTx(tx, dst); err != nil {
				return err
			}
		} else {
			dst.Quantity += req.Quantity
			if err := s.stocks.SetQuantityTx(tx, dst.ID, dst.Quantity); err != nil {
				return err
			}
		}

		rec = model.StockTransfer{
			ProductID:       req.ProductID,
			FromWarehouseID: req.FromWarehouseID,
			ToWarehouseID:   req.ToWarehouseID,
			Quantity:        req.Quantity,
			Reason:          req.Reason,
			OperatorID:      operatorID,
		}
		if err := s.transfers.CreateTx(tx, &rec); err != nil {
			return err
		}

		srcSnap, dstSnap = *src, *dst
		return s.logs.CreateTx(tx, &model.OperationLog{
			OperationType: model.OpTransfer,
			Detail: fmt.Sprintf("product %d transfer %d -> %d, quantity %d",
				req.ProductID, req.FromWarehouseID, req.ToWarehouseID, req.Quantity),
			OperatorID: operatorID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, &srcSnap, &dstSnap)
	return &rec, nil
}

// afterMutation runs the post-commit, best-effort side of a mutation: cache
// invalidation and threshold evaluation. Nothing here can fail the already
// committed ledger write.
func (s *ledgerService) afterMutation(ctx context.Context, snapshots ...*model.Stock) {
	for _, st := range snapshots {
		if s.cache != nil {
			if err := s.cache.Delete(ctx, ProductStockCacheKey(st.ProductID)); err != nil {
				log.Warn().Err(err).Uint("product_id", st.ProductID).Msg("ledger: cache invalidation failed")
			}
		}

		if s.evaluator == nil || s.alerts == nil {
			continue
		}
		minStock := 0
		if p, err := s.products.FindByID(ctx, st.ProductID); err == nil {
			minStock = p.MinStock
		}
		if ev := s.evaluator.EvaluateStock(st, minStock); ev != nil {
			s.alerts.Dispatch(*ev)
		}
	}
}
