package repository

import (
	"context"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/google/uuid"
)

// ItemRepository defines the interface for menu item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	ListAll(ctx context.Context) ([]entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}
