package ports

import (
	"context"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

// AppearanceRepository defines persistence operations for appearances.
type AppearanceRepository interface {
	// Create inserts the appearance inside a transaction and fills in its ID.
	Create(ctx context.Context, a *domain.Appearance) error
	FindByID(ctx context.Context, id int64) (*domain.Appearance, error)
	ListByEpisode(ctx context.Context, episodeID int64) ([]domain.Appearance, error)
}

// IdempotencyStore remembers which appearance a client-supplied Idempotency-Key produced.
type IdempotencyStore interface {
	// Lookup reports the appearance ID stored under key, if any.
	Lookup(ctx context.Context, key string) (int64, bool, error)
	Remember(ctx context.Context, key string, appearanceID int64) error
}
