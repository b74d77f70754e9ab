package service

import (
	"context"
	"encoding/json"
	"time"

	"stockward/internal/dto"
	"stockward/internal/infra"
	"stockward/internal/repository"

	"github.com/rs/zerolog/log"
)

// StockQueryService is the read side: per-product stock listings (cached)
// and the low-stock / near-expiry warning reports. It never mutates
// quantities.
type StockQueryService interface {
	ProductStock(ctx context.Context, productID uint) ([]dto.StockResponse, error)
	StockWarnings(ctx context.Context) ([]dto.StockWarningResponse, error)
	ExpiryWarnings(ctx context.Context, daysThreshold int) ([]dto.ExpiryWarningResponse, error)
}

type stockQueryService struct {
	stocks repository.StockRepository
	cache  infra.Cache
	ttl    time.Duration
	now    func() time.Time
}

// NewStockQueryService wires the read side. cache may be nil (reads then
// always hit the database).
func NewStockQueryService(stocks repository.StockRepository, cache infra.Cache, ttl time.Duration) StockQueryService {
	return &stockQueryService{stocks: stocks, cache: cache, ttl: ttl, now: time.Now}
}

// ProductStock returns the per-warehouse quantities for one product,
// reading through the explicit cache. Ledger mutations delete the key, so a
// stale entry lives at most one TTL after a racing write.
func (s *stockQueryService) ProductStock(ctx context.Context, productID uint) ([]dto.StockResponse, error) {
	key := ProductStockCacheKey(productID)

	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var cached []dto.StockResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	stocks, err := s.stocks.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.StockResponse, 0, len(stocks))
	for _, st := range stocks {
		resp = append(resp, dto.StockResponse{
			ProductID:   st.ProductID,
			WarehouseID: st.WarehouseID,
			Quantity:    st.Quantity,
			ShelfNumber: st.ShelfNumber,
			ExpiryDate:  st.ExpiryDate,
		})
	}

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
				log.Warn().Err(err).Uint("product_id", productID).Msg("stock query: cache set failed")
			}
		}
	}
	return resp, nil
}

// StockWarnings lists every key at or below its product's minimum.
func (s *stockQueryService) StockWarnings(ctx context.Context) ([]dto.StockWarningResponse, error) {
	stocks, err := s.stocks.ListWithProduct(ctx)
	if err != nil {
		return nil, err
	}

	var warnings []dto.StockWarningResponse
	for _, st := range stocks {
		if st.Product == nil || st.Quantity > st.Product.MinStock {
			continue
		}
		w := dto.StockWarningResponse{
			ProductID:       st.ProductID,
			ProductName:     st.Product.Name,
			CurrentQuantity: st.Quantity,
			MinStock:        st.Product.MinStock,
		}
		if st.Warehouse != nil {
			w.Warehouse = st.Warehouse.Name
		}
		warnings = append(warnings, w)
	}
	return warnings, nil
}

// ExpiryWarnings lists stock expiring within daysThreshold days. Days until
// expiry may be negative for already-expired stock.
func (s *stockQueryService) ExpiryWarnings(ctx context.Context, daysThreshold int) ([]dto.ExpiryWarningResponse, error) {
	now := s.now()
	cutoff := now.AddDate(0, 0, daysThreshold)

	stocks, err := s.stocks.ListExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	var warnings []dto.ExpiryWarningResponse
	for _, st := range stocks {
		if st.ExpiryDate == nil {
			continue
		}
		w := dto.ExpiryWarningResponse{
			ProductID:       st.ProductID,
			Quantity:        st.Quantity,
			ExpiryDate:      *st.ExpiryDate,
			DaysUntilExpiry: int(st.ExpiryDate.Sub(now).Hours() / 24),
		}
		if st.Product != nil {
			w.ProductName = st.Product.Name
		}
		if st.Warehouse != nil {
			w.Warehouse = st.Warehouse.Name
		}
		warnings = append(warnings, w)
	}
	return warnings, nil
}
