package ports

import (
	"context"

	"github.com/lateshow/lateshow-api/internal/core/domain"
)

// ActivityRepository persists audit records.
type ActivityRepository interface {
	Insert(ctx context.Context, activity domain.Activity) error
}

// ActivityRecorder accepts audit records without blocking the caller.
type ActivityRecorder interface {
	Record(activity domain.Activity)
}
