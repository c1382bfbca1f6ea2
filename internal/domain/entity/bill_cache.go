package entity

import (
	"time"

	"github.com/google/uuid"
)

// BillCacheEntry is the persisted tier of the per-table cart cache. It is a
// write-through snapshot of the last known cart/bill pairing for a table,
// kept so a till survives table switches and brief restarts without a round
// trip to the bill store. Never authoritative over the server records.
type BillCacheEntry struct {
	TableID     uuid.UUID  `gorm:"type:uuid;primary_key" json:"table_id"`
	SessionID   uuid.UUID  `gorm:"type:uuid;index" json:"session_id"`
	TableNumber string     `gorm:"size:50;not null" json:"table_number"`
	Lines       BillLines  `gorm:"type:jsonb;not null" json:"bill_items"`
	BillID      *uuid.UUID `gorm:"type:uuid" json:"bill_id,omitempty"`
	BillNumber  string     `gorm:"size:100;default:''" json:"bill_number,omitempty"`
	UpdatedAt   time.Time  `json:"last_updated"`
	ExpiresAt   time.Time  `gorm:"index" json:"expires_at"`
}

// IsExpired reports whether the entry has outlived its TTL at the given time.
func (e *BillCacheEntry) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// TableName returns the table name for the BillCacheEntry model
func (BillCacheEntry) TableName() string {
	return "bill_cache_entries"
}
