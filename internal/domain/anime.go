package domain

import "go.mongodb.org/mongo-driver/v2/bson"

// Anime airing states.
const (
	AnimeStatusFinished = "finished"
	AnimeStatusAiring   = "airing"
	AnimeStatusUpcoming = "upcoming"
)

// AnimeFields is the client-writable part of an anime record.
type AnimeFields struct {
	Title       string   `json:"title" bson:"title" validate:"required"`
	Genres      []string `json:"genres" bson:"genres" validate:"required,min=1,dive,required"`
	ReleaseYear *int     `json:"releaseYear" bson:"releaseYear" validate:"required,gte=1960,maxyear"`
	Rating      *float64 `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Episodes    *int     `json:"episodes,omitempty" bson:"episodes,omitempty" validate:"omitempty,gte=0"`
	Studio      string   `json:"studio,omitempty" bson:"studio,omitempty"`
	Status      string   `json:"status" bson:"status" validate:"required,oneof=finished airing upcoming"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty" bson:"coverImage,omitempty" validate:"omitempty,url"`
}

// Anime is a stored anime document.
type Anime struct {
	ID          bson.ObjectID `json:"id" bson:"_id"`
	AnimeFields `bson:",inline"`
	Timestamps  `bson:",inline"`
}
