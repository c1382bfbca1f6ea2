package service

import (
	"context"
	"errors"
	"strings"

	"github.com/LokeshN1/bill-master/internal/domain/entity"
	"github.com/LokeshN1/bill-master/internal/domain/repository"
	"github.com/LokeshN1/bill-master/pkg/apperror"
)

// InfoService manages the singleton café profile printed on receipts
type InfoService struct {
	infoRepo repository.InfoRepository
}

// NewInfoService creates a new info service
func NewInfoService(infoRepo repository.InfoRepository) *InfoService {
	return &InfoService{infoRepo: infoRepo}
}

// GetInfo returns the café profile
func (s *InfoService) GetInfo(ctx context.Context) (*entity.CafeInfo, error) {
	info, err := s.infoRepo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NewNotFoundError("Cafe info")
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

// UpdateInfoInput represents the café profile payload
type UpdateInfoInput struct {
	Name         string
	Address      string
	Contact      string
	GSTNumber    string
	Logo         string
	Website      string
	Email        string
	OpeningHours string
}

// UpdateInfo creates or replaces the café profile
func (s *InfoService) UpdateInfo(ctx context.Context, input *UpdateInfoInput) (*entity.CafeInfo, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Cafe name is required")
	}

	info := &entity.CafeInfo{
		Name:         name,
		Address:      strings.TrimSpace(input.Address),
		Contact:      strings.TrimSpace(input.Contact),
		GSTNumber:    strings.TrimSpace(input.GSTNumber),
		Logo:         input.Logo,
		Website:      strings.TrimSpace(input.Website),
		Email:        strings.TrimSpace(input.Email),
		OpeningHours: strings.TrimSpace(input.OpeningHours),
	}
	return s.infoRepo.Upsert(ctx, info)
}
