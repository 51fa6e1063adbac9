package domain

// Guest is a person who can appear on the show.
type Guest struct {
	ID         int64
	Name       string
	Occupation string
}
