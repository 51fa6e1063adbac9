package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Tables in creation order; drops run in reverse.
var models = []interface{}{
	(*userRow)(nil),
	(*guestRow)(nil),
	(*episodeRow)(nil),
	(*appearanceRow)(nil),
}

// EnsureSchema creates any missing table. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db bun.IDB) error {
	for _, model := range models {
		q := db.NewCreateTable().Model(model).IfNotExists()
		if _, ok := model.(*appearanceRow); ok {
			q = q.
				ForeignKey(`("guest_id") REFERENCES "guests" ("id") ON DELETE CASCADE`).
				ForeignKey(`("episode_id") REFERENCES "episodes" ("id") ON DELETE CASCADE`)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	// Rating range check, replaced on every run.
	if _, err := db.ExecContext(ctx, `ALTER TABLE "appearances" DROP CONSTRAINT IF EXISTS "appearances_rating_check"`); err != nil {
		return fmt.Errorf("drop rating check: %w", err)
	}
	if _, err := db.ExecContext(ctx, `ALTER TABLE "appearances" ADD CONSTRAINT "appearances_rating_check" CHECK ("rating" BETWEEN 1 AND 5)`); err != nil {
		return fmt.Errorf("add rating check: %w", err)
	}
	return nil
}

// ResetSchema drops every table and recreates them empty.
func ResetSchema(ctx context.Context, db bun.IDB) error {
	for i := len(models) - 1; i >= 0; i-- {
		if _, err := db.NewDropTable().Model(models[i]).IfExists().Cascade().Exec(ctx); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return EnsureSchema(ctx, db)
}
