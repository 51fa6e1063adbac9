package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

// SeedData is a full fixture set. Appearance GuestID and EpisodeID are 1-based
// positions in Guests and Episodes, resolved to generated ids on insert.
type SeedData struct {
	Users       []domain.User
	Guests      []domain.Guest
	Episodes    []domain.Episode
	Appearances []domain.Appearance
}

// SeedCounts reports how many rows Seed inserted per table.
type SeedCounts struct {
	Users       int
	Guests      int
	Episodes    int
	Appearances int
}

// Seed drops and recreates every table, then inserts data, all in one transaction.
func Seed(ctx context.Context, db *bun.DB, data SeedData) (SeedCounts, error) {
	var counts SeedCounts
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := ResetSchema(ctx, tx); err != nil {
			return err
		}

		users := make([]userRow, 0, len(data.Users))
		for _, u := range data.Users {
			users = append(users, userRow{Username: u.Username, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt})
		}
		guests := make([]guestRow, 0, len(data.Guests))
		for _, g := range data.Guests {
			guests = append(guests, guestRow{Name: g.Name, Occupation: g.Occupation})
		}
		episodes := make([]episodeRow, 0, len(data.Episodes))
		for _, e := range data.Episodes {
			episodes = append(episodes, episodeRow{Date: e.Date, Number: e.Number})
		}

		if err := insertAll(ctx, tx, &users, len(users), "users"); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, &guests, len(guests), "guests"); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, &episodes, len(episodes), "episodes"); err != nil {
			return err
		}

		appearances := make([]appearanceRow, 0, len(data.Appearances))
		for i, a := range data.Appearances {
			if a.GuestID < 1 || int(a.GuestID) > len(guests) || a.EpisodeID < 1 || int(a.EpisodeID) > len(episodes) {
				return fmt.Errorf("seed appearance %d: reference out of range", i)
			}
			if _, err := domain.NewAppearance(a.Rating, a.GuestID, a.EpisodeID); err != nil {
				return fmt.Errorf("seed appearance %d: %w", i, err)
			}
			appearances = append(appearances, appearanceRow{
				Rating:    a.Rating,
				GuestID:   guests[a.GuestID-1].ID,
				EpisodeID: episodes[a.EpisodeID-1].ID,
			})
		}
		if err := insertAll(ctx, tx, &appearances, len(appearances), "appearances"); err != nil {
			return err
		}

		counts = SeedCounts{
			Users:       len(users),
			Guests:      len(guests),
			Episodes:    len(episodes),
			Appearances: len(appearances),
		}
		return nil
	})
	return counts, err
}

func insertAll(ctx context.Context, tx bun.Tx, rows interface{}, n int, table string) error {
	if n == 0 {
		return nil
	}
	if _, err := tx.NewInsert().Model(rows).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("seed %s: %w", table, err)
	}
	return nil
}
