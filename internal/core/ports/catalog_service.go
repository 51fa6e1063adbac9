package ports

import (
	"context"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

// GuestService exposes guest use cases.
type GuestService interface {
	ListGuests(ctx context.Context) ([]domain.Guest, error)
}

// EpisodeService exposes episode use cases.
type EpisodeService interface {
	ListEpisodes(ctx context.Context) ([]domain.Episode, error)
	GetEpisode(ctx context.Context, id int64) (*domain.EpisodeDetail, error)
	DeleteEpisode(ctx context.Context, id int64, actor string) error
}
