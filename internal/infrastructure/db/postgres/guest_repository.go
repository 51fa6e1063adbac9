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

type GuestRepository struct {
	db bun.IDB
}

func NewGuestRepository(db bun.IDB) ports.GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) List(ctx context.Context) ([]domain.Guest, error) {
	start := time.Now()
	var rows []guestRow
	err := r.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx)
	metrics.ObserveQuery("select", "guests", start, err)
	if err != nil {
		return nil, err
	}

	guests := make([]domain.Guest, 0, len(rows))
	for i := range rows {
		guests = append(guests, rows[i].toDomain())
	}
	return guests, nil
}

func (r *GuestRepository) FindByID(ctx context.Context, id int64) (*domain.Guest, error) {
	start := time.Now()
	row := new(guestRow)
	err := r.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	metrics.ObserveQuery("select", "guests", start, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGuestNotFound
		}
		return nil, err
	}
	g := row.toDomain()
	return &g, nil
}
