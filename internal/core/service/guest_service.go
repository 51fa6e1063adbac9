package service

import (
	"context"
	"fmt"

	"github.com/lateshow/lateshow-api/internal/core/domain"
	"github.com/lateshow/lateshow-api/internal/core/ports"
)

// GuestService serves the guest list.
type GuestService struct {
	repo ports.GuestRepository
}

// NewGuestService returns a GuestService backed by repo.
func NewGuestService(repo ports.GuestRepository) *GuestService {
	return &GuestService{repo: repo}
}

// ListGuests returns every guest ordered by id.
func (s *GuestService) ListGuests(ctx context.Context) ([]domain.Guest, error) {
	guests, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}
