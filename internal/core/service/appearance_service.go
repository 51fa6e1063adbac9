package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lateshow/lateshow-api/internal/core/domain"
	"github.com/lateshow/lateshow-api/internal/core/ports"
)

// AppearanceService records guest appearances and serves them back by id.
type AppearanceService struct {
	appearances ports.AppearanceRepository
	guests      ports.GuestRepository
	episodes    ports.EpisodeRepository
	idempotency ports.IdempotencyStore // nil disables Idempotency-Key handling
	recorder    ports.ActivityRecorder
	log         zerolog.Logger
}

// NewAppearanceService wires the service. A nil idempotency store disables replays.
func NewAppearanceService(
	appearances ports.AppearanceRepository,
	guests ports.GuestRepository,
	episodes ports.EpisodeRepository,
	idempotency ports.IdempotencyStore,
	recorder ports.ActivityRecorder,
	log zerolog.Logger,
) *AppearanceService {
	return &AppearanceService{
		appearances: appearances,
		guests:      guests,
		episodes:    episodes,
		idempotency: idempotency,
		recorder:    recorder,
		log:         log,
	}
}

// CreateAppearance checks that the guest and then the episode exist, validates the
// rating, and inserts the appearance. A repeated Idempotency-Key returns the
// appearance created the first time.
func (s *AppearanceService) CreateAppearance(ctx context.Context, in ports.CreateAppearanceInput) (*ports.AppearanceResult, error) {
	if existing := s.replay(ctx, in.IdempotencyKey); existing != nil {
		return &ports.AppearanceResult{Appearance: *existing, AlreadyExisted: true}, nil
	}

	if _, err := s.guests.FindByID(ctx, in.GuestID); err != nil {
		return nil, fmt.Errorf("create appearance: %w", err)
	}
	if _, err := s.episodes.FindByID(ctx, in.EpisodeID); err != nil {
		return nil, fmt.Errorf("create appearance: %w", err)
	}

	appearance, err := domain.NewAppearance(in.Rating, in.GuestID, in.EpisodeID)
	if err != nil {
		return nil, err
	}

	if err := s.appearances.Create(ctx, appearance); err != nil {
		s.log.Error().Err(err).
			Int64("guest_id", in.GuestID).
			Int64("episode_id", in.EpisodeID).
			Msg("failed to create appearance")
		return nil, fmt.Errorf("create appearance: %w", err)
	}

	if in.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, in.IdempotencyKey, appearance.ID); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.recorder.Record(domain.Activity{
		Action:     domain.ActionAppearanceCreated,
		Resource:   "appearance",
		ResourceID: appearance.ID,
		Actor:      in.Actor,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().
		Int64("appearance_id", appearance.ID).
		Int64("guest_id", appearance.GuestID).
		Int64("episode_id", appearance.EpisodeID).
		Int("rating", appearance.Rating).
		Msg("appearance created")

	return &ports.AppearanceResult{Appearance: *appearance}, nil
}

// GetAppearance returns one appearance or domain.ErrAppearanceNotFound.
func (s *AppearanceService) GetAppearance(ctx context.Context, id int64) (*domain.Appearance, error) {
	a, err := s.appearances.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appearance: %w", err)
	}
	return a, nil
}

// replay returns the appearance previously created under key. Store failures are
// logged and treated as a miss so creation still goes ahead.
func (s *AppearanceService) replay(ctx context.Context, key string) *domain.Appearance {
	if key == "" || s.idempotency == nil {
		return nil
	}

	id, ok, err := s.idempotency.Lookup(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !ok {
		return nil
	}

	existing, err := s.appearances.FindByID(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Int64("appearance_id", id).Msg("idempotent replay target missing")
		return nil
	}
	s.log.Info().Str("idempotency_key", key).Int64("appearance_id", id).Msg("idempotent replay")
	return existing
}
