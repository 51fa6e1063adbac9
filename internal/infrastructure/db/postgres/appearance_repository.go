package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/lateshow/lateshow-api/internal/api/metrics"
	"github.com/lateshow/lateshow-api/internal/core/domain"
	"github.com/lateshow/lateshow-api/internal/core/ports"
)

type AppearanceRepository struct {
	db bun.IDB
}

func NewAppearanceRepository(db bun.IDB) ports.AppearanceRepository {
	return &AppearanceRepository{db: db}
}

// Create inserts the appearance inside a transaction and sets its generated id.
func (r *AppearanceRepository) Create(ctx context.Context, a *domain.Appearance) error {
	start := time.Now()
	row := &appearanceRow{Rating: a.Rating, GuestID: a.GuestID, EpisodeID: a.EpisodeID}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(row).Returning("id").Exec(ctx)
		return err
	})
	metrics.ObserveQuery("insert", "appearances", start, err)
	if err != nil {
		return err
	}

	a.ID = row.ID
	return nil
}

func (r *AppearanceRepository) FindByID(ctx context.Context, id int64) (*domain.Appearance, error) {
	start := time.Now()
	row := new(appearanceRow)
	err := r.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	metrics.ObserveQuery("select", "appearances", start, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAppearanceNotFound
		}
		return nil, err
	}
	a := row.toDomain()
	return &a, nil
}

func (r *AppearanceRepository) ListByEpisode(ctx context.Context, episodeID int64) ([]domain.Appearance, error) {
	start := time.Now()
	var rows []appearanceRow
	err := r.db.NewSelect().
		Model(&rows).
		Where("episode_id = ?", episodeID).
		Order("id ASC").
		Scan(ctx)
	metrics.ObserveQuery("select", "appearances", start, err)
	if err != nil {
		return nil, err
	}

	appearances := make([]domain.Appearance, 0, len(rows))
	for i := range rows {
		appearances = append(appearances, rows[i].toDomain())
	}
	return appearances, nil
}
