package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Kinds of media a watchlist entry can reference.
const (
	WatchKindAnime = "anime"
	WatchKindManga = "manga"
)

// Watchlist entry progress states.
const (
	WatchStatusPlanned   = "planned"
	WatchStatusWatching  = "watching"
	WatchStatusCompleted = "completed"
	WatchStatusReading   = "reading"
)

// MaxNotesLength bounds the free-text notes of a watchlist entry.
const MaxNotesLength = 500

// WatchItemFields is the client-writable part of a watchlist entry.
//
// UserID and RefID are references by convention only: nothing checks that the
// user, or the anime/manga selected by Kind, exists.
type WatchItemFields struct {
	UserID string `json:"userId" bson:"userId" validate:"required,objectid"`
	Kind   string `json:"kind" bson:"kind" validate:"required,oneof=anime manga"`
	RefID  string `json:"refId" bson:"refId" validate:"required,objectid"`
	Status string `json:"status" bson:"status" validate:"required,oneof=planned watching completed reading"`
	Notes  string `json:"notes,omitempty" bson:"notes,omitempty" validate:"max=500"`
}

// Normalize lower-cases the references so one document has one spelling.
func (f *WatchItemFields) Normalize() {
	f.UserID = strings.ToLower(f.UserID)
	f.RefID = strings.ToLower(f.RefID)
}

// WatchItem is a stored watchlist document.
type WatchItem struct {
	ID              bson.ObjectID `json:"id" bson:"_id"`
	WatchItemFields `bson:",inline"`
	Timestamps      `bson:",inline"`
}
