package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lateshow/lateshow-api/internal/core/domain"
	"github.com/lateshow/lateshow-api/internal/core/ports"
)

// EpisodeService reads episodes and deletes them along with their appearances.
type EpisodeService struct {
	episodes    ports.EpisodeRepository
	appearances ports.AppearanceRepository
	recorder    ports.ActivityRecorder
	log         zerolog.Logger
}

// NewEpisodeService returns an EpisodeService over the given repositories.
func NewEpisodeService(
	episodes ports.EpisodeRepository,
	appearances ports.AppearanceRepository,
	recorder ports.ActivityRecorder,
	log zerolog.Logger,
) *EpisodeService {
	return &EpisodeService{
		episodes:    episodes,
		appearances: appearances,
		recorder:    recorder,
		log:         log,
	}
}

// ListEpisodes returns every episode ordered by id.
func (s *EpisodeService) ListEpisodes(ctx context.Context) ([]domain.Episode, error) {
	episodes, err := s.episodes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	return episodes, nil
}

// GetEpisode returns the episode with all of its appearances embedded.
func (s *EpisodeService) GetEpisode(ctx context.Context, id int64) (*domain.EpisodeDetail, error) {
	episode, err := s.episodes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get episode: %w", err)
	}

	appearances, err := s.appearances.ListByEpisode(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get episode: list appearances: %w", err)
	}
	if appearances == nil {
		appearances = []domain.Appearance{}
	}

	return &domain.EpisodeDetail{Episode: *episode, Appearances: appearances}, nil
}

// DeleteEpisode removes the episode and, with it, every appearance that references it.
func (s *EpisodeService) DeleteEpisode(ctx context.Context, id int64, actor string) error {
	if _, err := s.episodes.FindByID(ctx, id); err != nil {
		return fmt.Errorf("delete episode: %w", err)
	}

	if err := s.episodes.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("episode_id", id).Msg("failed to delete episode")
		return fmt.Errorf("delete episode: %w", err)
	}

	s.recorder.Record(domain.Activity{
		Action:     domain.ActionEpisodeDeleted,
		Resource:   "episode",
		ResourceID: id,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Int64("episode_id", id).Str("actor", actor).Msg("episode deleted")
	return nil
}
