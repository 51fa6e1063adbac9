package domain

import "time"

// DateLayout is the wire and storage format of an episode air date.
const DateLayout = "2006-01-02"

// Episode is a single broadcast of the show.
type Episode struct {
	ID     int64
	Date   time.Time
	Number int
}

// EpisodeDetail is an episode together with every appearance recorded on it.
type EpisodeDetail struct {
	Episode     Episode
	Appearances []Appearance
}
