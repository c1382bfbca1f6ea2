package repository

import (
	"context"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/google/uuid"
)

// BillCacheRepository persists per-table cart snapshots with an expiry.
// Implementations delete stale entries lazily on read; Sweep is a best-effort
// periodic cleanup, not a correctness requirement.
type BillCacheRepository interface {
	Put(ctx context.Context, entry *entity.BillCacheEntry) error
	// Get returns nil for a missing or expired entry; an expired entry is
	// deleted on the way out.
	Get(ctx context.Context, tableID uuid.UUID) (*entity.BillCacheEntry, error)
	Delete(ctx context.Context, tableID uuid.UUID) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
	Sweep(ctx context.Context) (int64, error)
}
