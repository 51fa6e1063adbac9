package domain

import "fmt"

const (
	MinRating = 1
	MaxRating = 5
)

// Appearance is one guest's rated visit to one episode.
type Appearance struct {
	ID        int64
	Rating    int
	GuestID   int64
	EpisodeID int64
}

// NewAppearance builds an unsaved appearance, rejecting ratings outside MinRating..MaxRating.
func NewAppearance(rating int, guestID, episodeID int64) (*Appearance, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	return &Appearance{Rating: rating, GuestID: guestID, EpisodeID: episodeID}, nil
}
