package repository

import (
	"context"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
)

// InfoRepository defines the interface for the singleton café info record
type InfoRepository interface {
	Get(ctx context.Context) (*entity.CafeInfo, error)
	Upsert(ctx context.Context, info *entity.CafeInfo) (*entity.CafeInfo, error)
}
