package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	domainRepo "github.com/LokeshN1/bill-master/internal/domain/repository"
)

type billCacheRepository struct {
	db *gorm.DB
}

// NewBillCacheRepository creates the durable cart snapshot store
func NewBillCacheRepository(db *gorm.DB) domainRepo.BillCacheRepository {
	return &billCacheRepository{db: db}
}

// Put writes the snapshot, replacing any existing entry for the table.
func (r *billCacheRepository) Put(ctx context.Context, entry *entity.BillCacheEntry) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "table_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"session_id", "table_number", "lines", "bill_id", "bill_number", "updated_at", "expires_at",
		}),
	}).Create(entry).Error
	return translateError(err)
}

// Get returns the entry for the table, deleting and reporting nil if it has
// expired. Missing entries return nil without error.
func (r *billCacheRepository) Get(ctx context.Context, tableID uuid.UUID) (*entity.BillCacheEntry, error) {
	var entry entity.BillCacheEntry
	err := r.db.WithContext(ctx).First(&entry, "table_id = ?", tableID).Error
	if err != nil {
		if translateError(err) == domainRepo.ErrNotFound {
			return nil, nil
		}
		return nil, translateError(err)
	}
	if entry.IsExpired(time.Now()) {
		// Lazy expiry; the sweep only exists to bound table growth.
		if err := r.Delete(ctx, tableID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &entry, nil
}

func (r *billCacheRepository) Delete(ctx context.Context, tableID uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Delete(&entity.BillCacheEntry{}, "table_id = ?", tableID).Error)
}

func (r *billCacheRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Delete(&entity.BillCacheEntry{}, "session_id = ?", sessionID).Error)
}

func (r *billCacheRepository) Sweep(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&entity.BillCacheEntry{}, "expires_at < ?", time.Now())
	return result.RowsAffected, translateError(result.Error)
}
