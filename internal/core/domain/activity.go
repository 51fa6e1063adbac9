package domain

import (
	"fmt"
	"time"
)

// Activity actions written to the audit trail.
const (
	ActionAppearanceCreated = "appearance.created"
	ActionEpisodeDeleted    = "episode.deleted"
	ActionUserRegistered    = "user.registered"
)

// Activity is an audit record of a write performed through the API.
type Activity struct {
	Action     string
	Resource   string
	ResourceID int64
	Actor      string
	OccurredAt time.Time
}

// Key identifies the resource an activity belongs to; events sharing a key keep their order.
func (a Activity) Key() string {
	return fmt.Sprintf("%s:%d", a.Resource, a.ResourceID)
}
