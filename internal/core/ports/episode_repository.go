package ports

import (
	"context"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

// EpisodeRepository defines persistence operations for episodes.
type EpisodeRepository interface {
	List(ctx context.Context) ([]domain.Episode, error)
	// FindByID returns domain.ErrEpisodeNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.Episode, error)
	// Delete removes the episode and its appearances in one transaction.
	// It returns domain.ErrEpisodeNotFound when the episode row is already gone.
	Delete(ctx context.Context, id int64) error
}
