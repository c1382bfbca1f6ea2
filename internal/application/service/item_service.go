package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/internal/domain/repository"
	"github.com/LokeshN1/bill-master/pkg/apperror"
)

// ItemService handles menu item operations
type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Name     string
	Price    float64
	Category string
}

// CreateItem creates a new menu item
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Item price must not be negative")
	}

	item := &entity.Item{
		Name:     name,
		Price:    input.Price,
		Category: strings.TrimSpace(input.Category),
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves a menu item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NewNotFoundError("Item")
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns the whole menu
func (s *ItemService) ListItems(ctx context.Context) ([]entity.Item, error) {
	return s.itemRepo.ListAll(ctx)
}

// UpdateItemInput represents the update item input; nil fields are unchanged
type UpdateItemInput struct {
	Name     *string
	Price    *float64
	Category *string
}

// UpdateItem updates a menu item
func (s *ItemService) UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewBadRequestError("Item name is required")
		}
		item.Name = name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewBadRequestError("Item price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Item")
		}
		return nil, err
	}
	return item, nil
}

// DeleteItem deletes a menu item. Lines on existing bills keep their copied
// name and price, so history is unaffected.
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	err := s.itemRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewNotFoundError("Item")
	}
	return err
}
