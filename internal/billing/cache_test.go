package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
)

func snapshotWithLines(n int) cartSnapshot {
	lines := make([]entity.BillLine, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, entity.BillLine{ItemID: uuid.NewString(), Name: "Coffee", Price: 3.50, Quantity: 1})
	}
	return cartSnapshot{TableNumber: "7", Lines: lines, UpdatedAt: time.Now()}
}

func TestMemoryCache_PutGetDelete(t *testing.T) {
	cache := newMemoryCache()
	tableID := uuid.New()

	_, ok := cache.get(tableID)
	assert.False(t, ok)

	cache.put(tableID, snapshotWithLines(2))
	snap, ok := cache.get(tableID)
	require.True(t, ok)
	assert.Len(t, snap.Lines, 2)

	cache.delete(tableID)
	_, ok = cache.get(tableID)
	assert.False(t, ok)
}

func TestMemoryCache_HasLines(t *testing.T) {
	cache := newMemoryCache()
	busy, idle := uuid.New(), uuid.New()

	cache.put(busy, snapshotWithLines(1))
	cache.put(idle, snapshotWithLines(0))

	assert.True(t, cache.hasLines(busy))
	assert.False(t, cache.hasLines(idle), "an empty snapshot is not a live cart")
	assert.False(t, cache.hasLines(uuid.New()))
}

func TestMemoryCache_SnapshotForSkipsEmpty(t *testing.T) {
	cache := newMemoryCache()
	tableID := uuid.New()

	cache.put(tableID, snapshotWithLines(0))
	_, ok := cache.snapshotFor(tableID)
	assert.False(t, ok)

	cache.put(tableID, snapshotWithLines(3))
	snap, ok := cache.snapshotFor(tableID)
	require.True(t, ok)
	assert.Len(t, snap.Lines, 3)
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := newMemoryCache()
	a, b := uuid.New(), uuid.New()
	cache.put(a, snapshotWithLines(1))
	cache.put(b, snapshotWithLines(1))

	cache.clear()

	assert.False(t, cache.hasLines(a))
	assert.False(t, cache.hasLines(b))
}

func TestCartSnapshot_Empty(t *testing.T) {
	assert.True(t, cartSnapshot{}.empty())
	assert.False(t, snapshotWithLines(1).empty())
}
