package domain

import "go.mongodb.org/mongo-driver/v2/bson"

// Manga publication states.
const (
	MangaStatusOngoing  = "ongoing"
	MangaStatusFinished = "finished"
	MangaStatusHiatus   = "hiatus"
)

// MangaFields is the client-writable part of a manga record.
type MangaFields struct {
	Title       string   `json:"title" bson:"title" validate:"required"`
	Genres      []string `json:"genres" bson:"genres" validate:"required,min=1,dive,required"`
	Author      string   `json:"author" bson:"author" validate:"required"`
	Chapters    *int     `json:"chapters,omitempty" bson:"chapters,omitempty" validate:"omitempty,gte=0"`
	Status      string   `json:"status" bson:"status" validate:"required,oneof=ongoing finished hiatus"`
	ReleaseYear *int     `json:"releaseYear,omitempty" bson:"releaseYear,omitempty" validate:"omitempty,gte=1960,maxyear"`
	Rating      *float64 `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty" bson:"coverImage,omitempty" validate:"omitempty,url"`
}

// Manga is a stored manga document.
type Manga struct {
	ID          bson.ObjectID `json:"id" bson:"_id"`
	MangaFields `bson:",inline"`
	Timestamps  `bson:",inline"`
}
