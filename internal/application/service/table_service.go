package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/internal/domain/enum"
	"github.com/LokeshN1/bill-master/internal/domain/repository"
	"github.com/LokeshN1/bill-master/pkg/apperror"
	"github.com/LokeshN1/bill-master/pkg/tablenum"
)

// ActiveCartChecker reports whether any till session currently holds a
// non-empty cart for a table. The session manager implements it.
type ActiveCartChecker interface {
	HasActiveCart(tableID uuid.UUID) bool
}

// TableService handles floor layout operations
type TableService struct {
	tableRepo repository.TableRepository
	carts     ActiveCartChecker
}

// NewTableService creates a new table service
func NewTableService(tableRepo repository.TableRepository, carts ActiveCartChecker) *TableService {
	return &TableService{tableRepo: tableRepo, carts: carts}
}

// CreateTableInput represents the create table input. An empty TableNumber
// asks the numbering engine for the next identifier.
type CreateTableInput struct {
	TableNumber string
	Capacity    int
}

// CreateTableResult carries the created table plus a warning when a custom
// name landed on the identifier the numbering engine would have produced
// next.
type CreateTableResult struct {
	Table   *entity.Table `json:"table"`
	Warning string        `json:"warning,omitempty"`
}

// CreateTable creates a single table, auto-numbering it when no number is
// given.
func (s *TableService) CreateTable(ctx context.Context, input *CreateTableInput) (*CreateTableResult, error) {
	existing, err := s.existingNumbers(ctx)
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(input.TableNumber)
	warning := ""
	if number == "" {
		number = tablenum.Next(existing)
	} else if tablenum.ConflictsWithNext(existing, number) {
		warning = "table name matches the next auto-generated number"
	}

	table := &entity.Table{
		TableNumber: number,
		Status:      enum.TableStatusAvailable,
		Capacity:    input.Capacity,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("Table " + number + " already exists")
		}
		return nil, err
	}
	return &CreateTableResult{Table: table, Warning: warning}, nil
}

// BulkCreateTables creates count auto-numbered tables in one shot. The batch
// is all-or-nothing: any conflict rolls back every table in it.
func (s *TableService) BulkCreateTables(ctx context.Context, count, capacity int) ([]entity.Table, error) {
	if count < 1 {
		return nil, apperror.NewBadRequestError("Count must be at least 1")
	}
	if count > 100 {
		return nil, apperror.NewBadRequestError("Cannot create more than 100 tables at once")
	}

	existing, err := s.existingNumbers(ctx)
	if err != nil {
		return nil, err
	}

	numbers := tablenum.NextN(existing, count)
	tables := make([]entity.Table, len(numbers))
	for i, n := range numbers {
		tables[i] = entity.Table{
			TableNumber: n,
			Status:      enum.TableStatusAvailable,
			Capacity:    capacity,
		}
	}
	if err := s.tableRepo.BulkCreate(ctx, tables); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.NewConflictError("Table numbering conflict, retry the batch")
		}
		return nil, err
	}
	return tables, nil
}

// NextTableNumber previews what the numbering engine would assign next.
func (s *TableService) NextTableNumber(ctx context.Context) (string, error) {
	existing, err := s.existingNumbers(ctx)
	if err != nil {
		return "", err
	}
	return tablenum.Next(existing), nil
}

// GetTable retrieves a table by ID
func (s *TableService) GetTable(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NewNotFoundError("Table")
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

// ListTables returns the floor with each table's bill association
func (s *TableService) ListTables(ctx context.Context) ([]entity.TableWithStatus, error) {
	tables, err := s.tableRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.TableWithStatus, 0, len(tables))
	for _, t := range tables {
		out = append(out, entity.TableWithStatus{
			Table:   t,
			HasBill: t.LastBillID != nil,
			BillID:  t.LastBillID,
		})
	}
	return out, nil
}

// UpdateTableInput represents the update table input; nil fields are
// unchanged
type UpdateTableInput struct {
	Status   *enum.TableStatus
	Capacity *int
}

// UpdateTable updates a table's status or capacity
func (s *TableService) UpdateTable(ctx context.Context, id uuid.UUID, input *UpdateTableInput) (*entity.Table, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid table status")
	}
	if input.Capacity != nil && *input.Capacity < 1 {
		return nil, apperror.NewBadRequestError("Capacity must be at least 1")
	}

	table, err := s.tableRepo.Update(ctx, id, &repository.TableUpdate{
		Status:   input.Status,
		Capacity: input.Capacity,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NewNotFoundError("Table")
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

// DeleteTable removes a table. A table with an in-flight cart in any till
// session, an occupied status, or a saved bill reference is protected.
func (s *TableService) DeleteTable(ctx context.Context, id uuid.UUID) error {
	table, err := s.GetTable(ctx, id)
	if err != nil {
		return err
	}
	if s.carts != nil && s.carts.HasActiveCart(id) {
		return apperror.NewConflictError("Table has an active cart")
	}
	if table.Status == enum.TableStatusOccupied {
		return apperror.NewConflictError("Table is occupied")
	}
	if table.LastBillID != nil {
		return apperror.NewConflictError("Table has an unflushed bill")
	}

	err = s.tableRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewNotFoundError("Table")
	}
	return err
}

func (s *TableService) existingNumbers(ctx context.Context) ([]string, error) {
	tables, err := s.tableRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(tables))
	for _, t := range tables {
		numbers = append(numbers, t.TableNumber)
	}
	return numbers, nil
}
