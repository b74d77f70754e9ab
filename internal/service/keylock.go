package service

import "sync"

// stockKey identifies one (product, warehouse) quantity.
type stockKey struct {
	productID   uint
	warehouseID uint
}

func (k stockKey) less(o stockKey) bool {
	if k.productID != o.productID {
		return k.productID < o.productID
	}
	return k.warehouseID < o.warehouseID
}

// keyLocks serializes ledger mutations per stock key. Operations on
// different keys proceed fully in parallel; two operations on the same key
// cannot interleave their read-check-write sequence. Mutexes are created on
// first use and kept for the process lifetime — the key space is bounded by
// the catalog size.
type keyLocks struct {
	mu    sync.Mutex
	locks map[stockKey]*sync.Mutex
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[stockKey]*sync.Mutex)}
}

func (k *keyLocks) get(key stockKey) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// lockPair acquires both keys in a fixed global order (lower key first) so
// two transfers moving stock in opposite directions between the same pair of
// warehouses cannot deadlock. Returns the unlock function.
func (k *keyLocks) lockPair(a, b stockKey) func() {
	first, second := a, b
	if second.less(first) {
		first, second = second, first
	}
	fm, sm := k.get(first), k.get(second)
	fm.Lock()
	sm.Lock()
	return func() {
		sm.Unlock()
		fm.Unlock()
	}
}
