package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/lateshow/lateshow-api/internal/api/metrics"
	"github.com/lateshow/lateshow-api/internal/core/domain"
	"github.com/lateshow/lateshow-api/internal/core/ports"
)

const uniqueViolation = "23505"

// UserRepository implements ports.AuthRepository on the users table.
type UserRepository struct {
	db bun.IDB
}

func NewUserRepository(db bun.IDB) ports.AuthRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	start := time.Now()
	row := new(userRow)
	err := r.db.NewSelect().Model(row).Where("username = ?", username).Limit(1).Scan(ctx)
	metrics.ObserveQuery("select", "users", start, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	start := time.Now()
	row := &userRow{Username: user.Username, PasswordHash: user.PasswordHash, CreatedAt: user.CreatedAt}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NewInsert().Model(row).Returning("id").Exec(ctx)
	metrics.ObserveQuery("insert", "users", start, err)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}
