package ports

import (
	"context"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

// CreateAppearanceInput carries the validated payload of POST /appearances.
type CreateAppearanceInput struct {
	Rating         int
	GuestID        int64
	EpisodeID      int64
	Actor          string
	IdempotencyKey string
}

// AppearanceResult is returned by CreateAppearance.
type AppearanceResult struct {
	Appearance domain.Appearance
	// AlreadyExisted is true when the Idempotency-Key matched an earlier creation.
	AlreadyExisted bool
}

// AppearanceService defines use-case operations for appearances.
type AppearanceService interface {
	CreateAppearance(ctx context.Context, input CreateAppearanceInput) (*AppearanceResult, error)
	GetAppearance(ctx context.Context, id int64) (*domain.Appearance, error)
}
