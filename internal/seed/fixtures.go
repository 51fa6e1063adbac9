// Package seed loads the demo data set into an empty database.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/lateshow/lateshow-api/internal/core/domain"
	"github.com/lateshow/lateshow-api/internal/core/service"
	"github.com/lateshow/lateshow-api/internal/infrastructure/db/postgres"
)

type credential struct {
	username string
	password string
}

var users = []credential{
	{"admin", "password123"},
	{"testuser", "test123"},
}

var guests = []domain.Guest{
	{Name: "Jennifer Lawrence", Occupation: "Actress"},
	{Name: "Elon Musk", Occupation: "Entrepreneur"},
	{Name: "Taylor Swift", Occupation: "Musician"},
	{Name: "Neil deGrasse Tyson", Occupation: "Astrophysicist"},
	{Name: "Amy Schumer", Occupation: "Comedian"},
}

// Appearance references are 1-based positions in guests and episodes.
var appearances = []domain.Appearance{
	{Rating: 5, GuestID: 1, EpisodeID: 1},
	{Rating: 4, GuestID: 2, EpisodeID: 1},
	{Rating: 5, GuestID: 3, EpisodeID: 2},
	{Rating: 4, GuestID: 4, EpisodeID: 3},
	{Rating: 3, GuestID: 5, EpisodeID: 4},
	{Rating: 5, GuestID: 1, EpisodeID: 5},
}

func episodes() []domain.Episode {
	out := make([]domain.Episode, 0, 5)
	first := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		out = append(out, domain.Episode{Date: first.AddDate(0, 0, i), Number: 101 + i})
	}
	return out
}

// Fixtures builds the demo data set, hashing passwords with bcryptCost.
func Fixtures(bcryptCost int) (postgres.SeedData, error) {
	now := time.Now().UTC()
	data := postgres.SeedData{
		Guests:      append([]domain.Guest(nil), guests...),
		Episodes:    episodes(),
		Appearances: append([]domain.Appearance(nil), appearances...),
	}
	for _, u := range users {
		hash, err := service.HashPassword(u.password, bcryptCost)
		if err != nil {
			return postgres.SeedData{}, fmt.Errorf("hash password for %s: %w", u.username, err)
		}
		data.Users = append(data.Users, domain.User{Username: u.username, PasswordHash: hash, CreatedAt: now})
	}
	return data, nil
}

// Run resets the schema and loads the fixtures.
func Run(ctx context.Context, db *bun.DB, bcryptCost int, log zerolog.Logger) error {
	data, err := Fixtures(bcryptCost)
	if err != nil {
		return err
	}

	counts, err := postgres.Seed(ctx, db, data)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Info().
		Int("users", counts.Users).
		Int("guests", counts.Guests).
		Int("episodes", counts.Episodes).
		Int("appearances", counts.Appearances).
		Msg("database seeded successfully")
	return nil
}
