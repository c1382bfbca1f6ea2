package billing

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
)

// CacheSource tags where a table's cart was resolved from when the table was
// selected.
type CacheSource string

const (
	// SourceMemory means the in-process cache had a live snapshot.
	SourceMemory CacheSource = "memory"
	// SourceBill means the cart was rebuilt from the table's last saved bill.
	SourceBill CacheSource = "bill"
	// SourcePersisted means the durable cache supplied the snapshot.
	SourcePersisted CacheSource = "persisted"
	// SourceEmpty means nothing was found and the cart starts fresh.
	SourceEmpty CacheSource = "empty"
)

// cartSnapshot is the unit the cache tiers trade in: the cart lines plus the
// bill association at the moment the snapshot was taken.
type cartSnapshot struct {
	TableNumber string
	Lines       []entity.BillLine
	BillID      *uuid.UUID
	BillNumber  string
	UpdatedAt   time.Time
}

func (s cartSnapshot) empty() bool { return len(s.Lines) == 0 }

// memoryCache is the first cache tier: per-process, lock-guarded, keyed by
// table id. It survives table switches but not a process restart; the
// persisted tier covers that.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]cartSnapshot
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[uuid.UUID]cartSnapshot)}
}

func (c *memoryCache) put(tableID uuid.UUID, snap cartSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tableID] = snap
}

func (c *memoryCache) get(tableID uuid.UUID) (cartSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.entries[tableID]
	return snap, ok
}

func (c *memoryCache) delete(tableID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tableID)
}

func (c *memoryCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uuid.UUID]cartSnapshot)
}

// hasLines reports whether the table has a non-empty cached cart. The
// background refresher uses this to keep locally busy tables shown as
// occupied even when the server record lags behind.
func (c *memoryCache) hasLines(tableID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.entries[tableID]
	return ok && len(snap.Lines) > 0
}

func (c *memoryCache) snapshotFor(tableID uuid.UUID) (cartSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.entries[tableID]
	if !ok || len(snap.Lines) == 0 {
		return cartSnapshot{}, false
	}
	return snap, true
}
