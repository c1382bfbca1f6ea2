package repository

import (
	"context"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/pkg/pagination"
	"github.com/google/uuid"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	ListAll(ctx context.Context) ([]entity.Bill, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	Update(ctx context.Context, bill *entity.Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination  *pagination.PaginationParams
	TableNumber string
	Search      string
	SortBy      string
	SortOrder   string
}
