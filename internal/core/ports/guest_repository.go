package ports

import (
	"context"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

// GuestRepository defines read access to guests.
type GuestRepository interface {
	List(ctx context.Context) ([]domain.Guest, error)
	// FindByID returns domain.ErrGuestNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.Guest, error)
}
