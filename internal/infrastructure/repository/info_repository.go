package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	domainRepo "github.com/LokeshN1/bill-master/internal/domain/repository"
)

type infoRepository struct {
	db *gorm.DB
}

// NewInfoRepository creates a new café info repository
func NewInfoRepository(db *gorm.DB) domainRepo.InfoRepository {
	return &infoRepository{db: db}
}

func (r *infoRepository) Get(ctx context.Context) (*entity.CafeInfo, error) {
	var info entity.CafeInfo
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&info).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &info, nil
}

// Upsert updates the singleton record, creating it on first write. Only one
// row ever exists; concurrent first writes collapse onto the oldest row.
func (r *infoRepository) Upsert(ctx context.Context, info *entity.CafeInfo) (*entity.CafeInfo, error) {
	var existing entity.CafeInfo
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(info).Error; err != nil {
			return nil, translateError(err)
		}
		return info, nil
	}
	if err != nil {
		return nil, translateError(err)
	}

	err = r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
		"name":          info.Name,
		"address":       info.Address,
		"contact":       info.Contact,
		"gst_number":    info.GSTNumber,
		"logo":          info.Logo,
		"website":       info.Website,
		"email":         info.Email,
		"opening_hours": info.OpeningHours,
	}).Error
	if err != nil {
		return nil, translateError(err)
	}
	return r.Get(ctx)
}
