package postgres

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

// Row types map tables to bun models; repositories translate them to domain records.

type userRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{ID: r.ID, Username: r.Username, PasswordHash: r.PasswordHash, CreatedAt: r.CreatedAt}
}

type guestRow struct {
	bun.BaseModel `bun:"table:guests,alias:g"`

	ID         int64  `bun:"id,pk,autoincrement"`
	Name       string `bun:"name,notnull"`
	Occupation string `bun:"occupation"`
}

func (r *guestRow) toDomain() domain.Guest {
	return domain.Guest{ID: r.ID, Name: r.Name, Occupation: r.Occupation}
}

type episodeRow struct {
	bun.BaseModel `bun:"table:episodes,alias:e"`

	ID     int64     `bun:"id,pk,autoincrement"`
	Date   time.Time `bun:"date,type:date,notnull"`
	Number int       `bun:"number,notnull"`
}

func (r *episodeRow) toDomain() domain.Episode {
	return domain.Episode{ID: r.ID, Date: r.Date, Number: r.Number}
}

type appearanceRow struct {
	bun.BaseModel `bun:"table:appearances,alias:a"`

	ID        int64 `bun:"id,pk,autoincrement"`
	Rating    int   `bun:"rating,notnull"`
	GuestID   int64 `bun:"guest_id,notnull"`
	EpisodeID int64 `bun:"episode_id,notnull"`
}

func (r *appearanceRow) toDomain() domain.Appearance {
	return domain.Appearance{ID: r.ID, Rating: r.Rating, GuestID: r.GuestID, EpisodeID: r.EpisodeID}
}
