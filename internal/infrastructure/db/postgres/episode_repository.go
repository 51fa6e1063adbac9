package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/lateshow/lateshow-api/internal/api/metrics"
	"github.com/lateshow/lateshow-api/internal/core/domain"
	"github.com/lateshow/lateshow-api/internal/core/ports"
)

type EpisodeRepository struct {
	db bun.IDB
}

func NewEpisodeRepository(db bun.IDB) ports.EpisodeRepository {
	return &EpisodeRepository{db: db}
}

func (r *EpisodeRepository) List(ctx context.Context) ([]domain.Episode, error) {
	start := time.Now()
	var rows []episodeRow
	err := r.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx)
	metrics.ObserveQuery("select", "episodes", start, err)
	if err != nil {
		return nil, err
	}

	episodes := make([]domain.Episode, 0, len(rows))
	for i := range rows {
		episodes = append(episodes, rows[i].toDomain())
	}
	return episodes, nil
}

func (r *EpisodeRepository) FindByID(ctx context.Context, id int64) (*domain.Episode, error) {
	start := time.Now()
	row := new(episodeRow)
	err := r.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	metrics.ObserveQuery("select", "episodes", start, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEpisodeNotFound
		}
		return nil, err
	}
	e := row.toDomain()
	return &e, nil
}

// Delete removes the episode's appearances and then the episode in one
// transaction. Any failure rolls both back.
func (r *EpisodeRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*appearanceRow)(nil)).
			Where("episode_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete appearances: %w", err)
		}

		res, err := tx.NewDelete().
			Model((*episodeRow)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete episode: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrEpisodeNotFound
		}
		return nil
	})
	metrics.ObserveQuery("delete", "episodes", start, err)
	return err
}
