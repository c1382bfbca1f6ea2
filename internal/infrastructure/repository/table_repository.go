package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	domainRepo "github.com/LokeshN1/bill-master/internal/domain/repository"
)

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, table *entity.Table) error {
	return translateError(r.db.WithContext(ctx).Create(table).Error)
}

// BulkCreate inserts all tables in one transaction; a single conflicting
// number rolls back the whole batch.
func (r *tableRepository) BulkCreate(ctx context.Context, tables []entity.Table) error {
	if len(tables) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range tables {
			if err := tx.Create(&tables[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err)
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	var table entity.Table
	err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &table, nil
}

func (r *tableRepository) GetByNumber(ctx context.Context, tableNumber string) (*entity.Table, error) {
	var table entity.Table
	err := r.db.WithContext(ctx).First(&table, "table_number = ?", tableNumber).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &table, nil
}

func (r *tableRepository) ListAll(ctx context.Context) ([]entity.Table, error) {
	var tables []entity.Table
	// Numeric identifiers sort by value, suffixed variants and custom names
	// fall back to lexical order after them.
	err := r.db.WithContext(ctx).
		Order("CASE WHEN table_number ~ '^[0-9]+$' THEN table_number::integer ELSE 2147483647 END ASC, table_number ASC").
		Find(&tables).Error
	return tables, translateError(err)
}

func (r *tableRepository) Update(ctx context.Context, id uuid.UUID, update *domainRepo.TableUpdate) (*entity.Table, error) {
	fields := map[string]interface{}{}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.Capacity != nil {
		fields["capacity"] = *update.Capacity
	}
	if update.SetLastBillID {
		fields["last_bill_id"] = update.LastBillID
	}
	if len(fields) > 0 {
		result := r.db.WithContext(ctx).Model(&entity.Table{}).
			Where("id = ?", id).
			Updates(fields)
		if result.Error != nil {
			return nil, translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domainRepo.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *tableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Table{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}
