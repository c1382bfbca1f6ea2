package repository

import (
	"context"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/internal/domain/enum"
	"github.com/google/uuid"
)

// TableUpdate carries a partial update for a table record. Nil fields are
// left untouched; SetLastBillID distinguishes "clear the reference" from
// "leave it alone".
type TableUpdate struct {
	Status        *enum.TableStatus
	Capacity      *int
	LastBillID    *uuid.UUID
	SetLastBillID bool
}

// TableRepository defines the interface for table data operations
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	BulkCreate(ctx context.Context, tables []entity.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error)
	GetByNumber(ctx context.Context, tableNumber string) (*entity.Table, error)
	ListAll(ctx context.Context) ([]entity.Table, error)
	Update(ctx context.Context, id uuid.UUID, update *TableUpdate) (*entity.Table, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
