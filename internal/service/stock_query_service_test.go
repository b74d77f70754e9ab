package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"stockward/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is a map-backed Cache for read-path tests (stubCache always misses).
type memCache struct {
	mu     sync.Mutex
	values map[string]string
	sets   int
}

func newMemCache() *memCache { return &memCache{values: make(map[string]string)} }

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func seedStock(t *testing.T, repo *stubStockRepo, st model.Stock) {
	t.Helper()
	require.NoError(t, repo.CreateTx(nil, &st))
}

func TestProductStockCachesListing(t *testing.T) {
	stocks := newStubStockRepo()
	cache := newMemCache()
	svc := NewStockQueryService(stocks, cache, time.Minute)
	ctx := context.Background()

	seedStock(t, stocks, model.Stock{ProductID: 7, WarehouseID: 1, Quantity: 40})
	seedStock(t, stocks, model.Stock{ProductID: 7, WarehouseID: 2, Quantity: 10})
	seedStock(t, stocks, model.Stock{ProductID: 8, WarehouseID: 1, Quantity: 5})

	resp, err := svc.ProductStock(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from the cache even after the store changes.
	require.NoError(t, stocks.SetQuantityTx(nil, 1, 999))
	resp, err = svc.ProductStock(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, 1, cache.sets)
	for _, st := range resp {
		assert.NotEqual(t, 999, st.Quantity)
	}

	// Invalidation (as the ledger does it) forces a fresh read.
	require.NoError(t, cache.Delete(ctx, ProductStockCacheKey(7)))
	resp, err = svc.ProductStock(ctx, 7)
	require.NoError(t, err)
	quantities := map[uint]int{}
	for _, st := range resp {
		quantities[st.WarehouseID] = st.Quantity
	}
	assert.Equal(t, 999, quantities[1])
}

func TestStockWarningsUsePerProductMinimum(t *testing.T) {
	stocks := newStubStockRepo()
	svc := NewStockQueryService(stocks, nil, 0)

	low := model.Stock{ProductID: 7, WarehouseID: 1, Quantity: 5,
		Product: &model.Product{ID: 7, Name: "bolts", MinStock: 10}}
	fine := model.Stock{ProductID: 8, WarehouseID: 1, Quantity: 50,
		Product: &model.Product{ID: 8, Name: "nuts", MinStock: 10}}
	atMin := model.Stock{ProductID: 9, WarehouseID: 2, Quantity: 10,
		Product: &model.Product{ID: 9, Name: "washers", MinStock: 10}}
	seedStock(t, stocks, low)
	seedStock(t, stocks, fine)
	seedStock(t, stocks, atMin)

	warnings, err := svc.StockWarnings(context.Background())
	require.NoError(t, err)
	require.Len(t, warnings, 2)

	names := map[string]int{}
	for _, w := range warnings {
		names[w.ProductName] = w.CurrentQuantity
	}
	assert.Equal(t, 5, names["bolts"])
	assert.Equal(t, 10, names["washers"])
}

func TestExpiryWarningsIncludeExpiredStock(t *testing.T) {
	stocks := newStubStockRepo()
	svc := NewStockQueryService(stocks, nil, 0).(*stockQueryService)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	soon := now.AddDate(0, 0, 10)
	expired := now.AddDate(0, 0, -3)
	far := now.AddDate(0, 0, 120)
	seedStock(t, stocks, model.Stock{ProductID: 7, WarehouseID: 1, Quantity: 40, ExpiryDate: &soon})
	seedStock(t, stocks, model.Stock{ProductID: 8, WarehouseID: 1, Quantity: 12, ExpiryDate: &expired})
	seedStock(t, stocks, model.Stock{ProductID: 9, WarehouseID: 1, Quantity: 30, ExpiryDate: &far})
	seedStock(t, stocks, model.Stock{ProductID: 10, WarehouseID: 1, Quantity: 8})

	warnings, err := svc.ExpiryWarnings(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, warnings, 2)

	days := map[uint]int{}
	for _, w := range warnings {
		days[w.ProductID] = w.DaysUntilExpiry
	}
	assert.Equal(t, 10, days[7])
	assert.Equal(t, -3, days[8])
}
