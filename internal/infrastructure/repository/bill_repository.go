package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	domainRepo "github.com/LokeshN1/bill-master/internal/domain/repository"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return translateError(r.db.WithContext(ctx).Create(bill).Error)
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).First(&bill, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &bill, nil
}

func (r *billRepository) ListAll(ctx context.Context) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&bills).Error
	return bills, translateError(err)
}

// List returns a filtered, sorted page of bills plus the unpaged total.
func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Bill{})

	if params.TableNumber != "" {
		query = query.Where("table_number = ?", params.TableNumber)
	}
	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("bill_number ILIKE ? OR table_number ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	sortBy := params.SortBy
	switch sortBy {
	case "bill_number", "table_number", "total_amount", "created_at":
	default:
		sortBy = "created_at"
	}
	order := sortBy + " DESC"
	if params.SortOrder == "asc" {
		order = sortBy + " ASC"
	}
	query = query.Order(order)

	if params.Pagination != nil {
		query = query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage)
	}

	var bills []entity.Bill
	if err := query.Find(&bills).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return bills, total, nil
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	result := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ?", bill.ID).
		Updates(map[string]interface{}{
			"lines":          bill.Lines,
			"total_amount":   bill.TotalAmount,
			"receipt_format": bill.ReceiptFormat,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Bill{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}
