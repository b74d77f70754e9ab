package service

import (
	"context"
	"sync"
	"time"

	"stockward/internal/alert"
	"stockward/internal/model"
	"stockward/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubStockRepo is an in-memory StockRepository. DB() returns nil, so the
// ledger runs its transaction closures directly against the maps.
type stubStockRepo struct {
	mu     sync.Mutex
	byKey  map[stockKey]*model.Stock
	byID   map[uint]*model.Stock
	nextID uint
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{
		byKey: make(map[stockKey]*model.Stock),
		byID:  make(map[uint]*model.Stock),
	}
}

func (r *stubStockRepo) FindByKey(_ context.Context, productID, warehouseID uint) (*model.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.byKey[stockKey{productID, warehouseID}]
	if !ok {
		return nil, repository.ErrStockNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *stubStockRepo) ListByProduct(_ context.Context, productID uint) ([]model.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Stock
	for _, st := range r.byKey {
		if st.ProductID == productID {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (r *stubStockRepo) ListWithProduct(_ context.Context) ([]model.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Stock
	for _, st := range r.byKey {
		out = append(out, *st)
	}
	return out, nil
}

func (r *stubStockRepo) ListExpiringBefore(_ context.Context, t time.Time) ([]model.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Stock
	for _, st := range r.byKey {
		if st.ExpiryDate != nil && !st.ExpiryDate.After(t) {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (r *stubStockRepo) FindByKeyForUpdate(_ *gorm.DB, productID, warehouseID uint) (*model.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.byKey[stockKey{productID, warehouseID}]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *stubStockRepo) CreateTx(_ *gorm.DB, s *model.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.byKey[stockKey{s.ProductID, s.WarehouseID}] = &cp
	r.byID[s.ID] = &cp
	return nil
}

func (r *stubStockRepo) SetQuantityTx(_ *gorm.DB, id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.byID[id]; ok {
		st.Quantity = quantity
	}
	return nil
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

// quantity is a test helper reading the current quantity for a key.
func (r *stubStockRepo) quantity(productID, warehouseID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.byKey[stockKey{productID, warehouseID}]; ok {
		return st.Quantity
	}
	return 0
}

var _ repository.StockRepository = (*stubStockRepo)(nil)

type stubInboundRepo struct {
	mu   sync.Mutex
	recs []model.InboundRecord
}

func (r *stubInboundRepo) CreateTx(_ *gorm.DB, rec *model.InboundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = uint(len(r.recs) + 1)
	r.recs = append(r.recs, *rec)
	return nil
}

func (r *stubInboundRepo) ListBetween(_ context.Context, _, _ time.Time) ([]model.InboundRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.InboundRecord(nil), r.recs...), nil
}

var _ repository.InboundRepository = (*stubInboundRepo)(nil)

type stubOutboundRepo struct {
	mu   sync.Mutex
	recs []model.OutboundRecord
}

func (r *stubOutboundRepo) CreateTx(_ *gorm.DB, rec *model.OutboundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = uint(len(r.recs) + 1)
	r.recs = append(r.recs, *rec)
	return nil
}

func (r *stubOutboundRepo) ListBetween(_ context.Context, _, _ time.Time) ([]model.OutboundRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.OutboundRecord(nil), r.recs...), nil
}

var _ repository.OutboundRepository = (*stubOutboundRepo)(nil)

type stubTransferRepo struct {
	mu   sync.Mutex
	recs []model.StockTransfer
}

func (r *stubTransferRepo) CreateTx(_ *gorm.DB, rec *model.StockTransfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = uint(len(r.recs) + 1)
	r.recs = append(r.recs, *rec)
	return nil
}

func (r *stubTransferRepo) ListBetween(_ context.Context, _, _ time.Time) ([]model.StockTransfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.StockTransfer(nil), r.recs...), nil
}

var _ repository.TransferRepository = (*stubTransferRepo)(nil)

type stubLogRepo struct {
	mu   sync.Mutex
	logs []model.OperationLog
}

func (r *stubLogRepo) CreateTx(_ *gorm.DB, l *model.OperationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = uint(len(r.logs) + 1)
	r.logs = append(r.logs, *l)
	return nil
}

func (r *stubLogRepo) List(_ context.Context, _ repository.OperationLogFilter) ([]model.OperationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.OperationLog(nil), r.logs...), nil
}

var _ repository.OperationLogRepository = (*stubLogRepo)(nil)

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uint]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = uint(len(r.products) + 1)
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]model.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubSyncQueueRepo is an in-memory SyncQueueRepository preserving insertion
// order for ListPending.
type stubSyncQueueRepo struct {
	mu    sync.Mutex
	items []*model.SyncQueueItem
}

func (r *stubSyncQueueRepo) Create(_ context.Context, item *model.SyncQueueItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = uint(len(r.items) + 1)
	item.CreatedAt = time.Now()
	r.items = append(r.items, item)
	return nil
}

func (r *stubSyncQueueRepo) FindByClientOpID(_ context.Context, id uuid.UUID) (*model.SyncQueueItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ClientOpID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (r *stubSyncQueueRepo) ListPending(_ context.Context, maxRetries int) ([]model.SyncQueueItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SyncQueueItem
	for _, item := range r.items {
		if item.Status == model.SyncStatusPending && item.RetryCount < maxRetries {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubSyncQueueRepo) Update(_ context.Context, updated *model.SyncQueueItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == updated.ID {
			*item = *updated
			return nil
		}
	}
	return nil
}

func (r *stubSyncQueueRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if item.Status == status {
			n++
		}
	}
	return n, nil
}

var _ repository.SyncQueueRepository = (*stubSyncQueueRepo)(nil)

// capturingSink records dispatched alert events for assertion.
type capturingSink struct {
	mu     sync.Mutex
	events []alert.Event
}

func (s *capturingSink) Dispatch(ev alert.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *capturingSink) byKind(kind alert.Kind) []alert.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []alert.Event
	for _, ev := range s.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

var _ AlertSink = (*capturingSink)(nil)

// stubCache records invalidations; reads always miss.
type stubCache struct {
	mu      sync.Mutex
	deleted []string
}

func (c *stubCache) Get(_ context.Context, _ string) (string, bool, error) { return "", false, nil }

func (c *stubCache) Set(_ context.Context, _, _ string, _ time.Duration) error { return nil }

func (c *stubCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, keys...)
	return nil
}
