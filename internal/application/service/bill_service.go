package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/internal/domain/repository"
	"github.com/LokeshN1/bill-master/pkg/apperror"
	"github.com/LokeshN1/bill-master/pkg/pagination"
)

// BillService handles the saved bill archive. Creating and updating bills
// normally happens through a till session; the direct create path exists for
// imports and corrections.
type BillService struct {
	billRepo  repository.BillRepository
	tableRepo repository.TableRepository
}

// NewBillService creates a new bill service
func NewBillService(billRepo repository.BillRepository, tableRepo repository.TableRepository) *BillService {
	return &BillService{billRepo: billRepo, tableRepo: tableRepo}
}

// GetBill retrieves a bill by ID
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// ListBillsInput carries the archive query parameters
type ListBillsInput struct {
	Pagination  *pagination.PaginationParams
	TableNumber string
	Search      string
	SortBy      string
	SortOrder   string
}

// ListBills returns a filtered page of the bill archive
func (s *BillService) ListBills(ctx context.Context, input *ListBillsInput) (*pagination.PaginatedResult[entity.Bill], error) {
	params := input.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	bills, total, err := s.billRepo.List(ctx, &repository.BillFilterParams{
		Pagination:  params,
		TableNumber: input.TableNumber,
		Search:      input.Search,
		SortBy:      input.SortBy,
		SortOrder:   input.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(bills, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// DeleteBill removes a bill from the archive and clears any table still
// pointing at it, so the table does not keep resurrecting a deleted bill.
func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return err
	}

	if err := s.billRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewNotFoundError("Bill")
		}
		return err
	}

	table, err := s.tableRepo.GetByNumber(ctx, bill.TableNumber)
	if err == nil && table.LastBillID != nil && *table.LastBillID == id {
		if _, err := s.tableRepo.Update(ctx, table.ID, &repository.TableUpdate{SetLastBillID: true}); err != nil {
			return err
		}
	}
	return nil
}
