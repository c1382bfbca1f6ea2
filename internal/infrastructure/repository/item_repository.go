package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	domainRepo "github.com/LokeshN1/bill-master/internal/domain/repository"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new menu item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return translateError(r.db.WithContext(ctx).Create(item).Error)
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (r *itemRepository) ListAll(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	err := r.db.WithContext(ctx).
		Order("category ASC, name ASC").
		Find(&items).Error
	return items, translateError(err)
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	result := r.db.WithContext(ctx).Model(&entity.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":     item.Name,
			"price":    item.Price,
			"category": item.Category,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Item{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}
