package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DocumentStore persists the documents of one collection. R is the stored
// record type returned by reads.
//
// Every method issues exactly one database operation. Implementations must be
// safe for concurrent use; concurrent replaces of the same document are
// last-write-wins.
type DocumentStore[R any] interface {
	// FindAll returns every document in the collection in insertion order.
	FindAll(ctx context.Context) ([]R, error)

	// FindByID returns the document with the given id or ErrNotFound.
	FindByID(ctx context.Context, id bson.ObjectID) (R, error)

	// InsertOne stores doc and returns the identifier assigned to it.
	InsertOne(ctx context.Context, doc any) (bson.ObjectID, error)

	// ReplaceByID overwrites every client-writable field of the document with
	// fields, keeping its identifier and createdAt and setting updatedAt.
	// Returns ErrNotFound when no document has the given id.
	ReplaceByID(ctx context.Context, id bson.ObjectID, fields any, updatedAt time.Time) error

	// DeleteByID removes the document or returns ErrNotFound.
	DeleteByID(ctx context.Context, id bson.ObjectID) error
}

// NewDocument wraps client-writable fields with creation timestamps for insertion.
func NewDocument[F any](fields F, now time.Time) Document[F] {
	return Document[F]{Fields: fields, CreatedAt: now, UpdatedAt: now}
}

// Document is the shape inserted into a collection: the validated fields
// flattened alongside the server-managed timestamps.
type Document[F any] struct {
	Fields    F         `bson:",inline"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}
