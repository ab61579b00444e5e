package domain

import "time"

// Timestamps are set by the server. CreatedAt never changes after insertion;
// UpdatedAt is refreshed by every successful replace.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// MinReleaseYear is the earliest release year accepted for anime and manga.
const MinReleaseYear = 1960

// MaxReleaseYear returns the latest accepted release year, one year past the
// current one so announced titles can be catalogued.
func MaxReleaseYear(now time.Time) int {
	return now.Year() + 1
}
