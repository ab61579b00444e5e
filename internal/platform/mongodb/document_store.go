package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/anime-api/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DocumentStore implements store.DocumentStore for one collection.
type DocumentStore[R any] struct {
	coll *mongo.Collection
}

var _ store.DocumentStore[struct{}] = (*DocumentStore[struct{}])(nil)

// NewDocumentStore creates a store over coll.
func NewDocumentStore[R any](coll *mongo.Collection) *DocumentStore[R] {
	return &DocumentStore[R]{coll: coll}
}

func byID(id bson.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// FindAll returns all documents ordered by identifier, which is creation order.
func (s *DocumentStore[R]) FindAll(ctx context.Context) ([]R, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, store.NewStoreError(s.coll.Name(), "find", err)
	}

	records := make([]R, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, store.NewStoreError(s.coll.Name(), "find", err)
	}

	return records, nil
}

// FindByID returns the document with the given id.
func (s *DocumentStore[R]) FindByID(ctx context.Context, id bson.ObjectID) (R, error) {
	var record R

	err := s.coll.FindOne(ctx, byID(id)).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return record, store.NewStoreError(s.coll.Name(), "find", store.ErrNotFound)
	}
	if err != nil {
		return record, store.NewStoreError(s.coll.Name(), "find", err)
	}

	return record, nil
}

// InsertOne inserts doc and returns the ObjectID the driver assigned to it.
func (s *DocumentStore[R]) InsertOne(ctx context.Context, doc any) (bson.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return bson.NilObjectID, store.NewStoreError(s.coll.Name(), "insert", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, store.NewStoreError(s.coll.Name(), "insert",
			fmt.Errorf("%w: inserted id has type %T", store.ErrInvalidDocument, res.InsertedID))
	}

	return id, nil
}

// ReplaceByID overwrites the document in a single update whose pipeline
// rebuilds it from the new fields plus its existing _id and createdAt. Fields
// absent from the new version are dropped.
func (s *DocumentStore[R]) ReplaceByID(ctx context.Context, id bson.ObjectID, fields any, updatedAt time.Time) error {
	kept := bson.D{
		{Key: "_id", Value: "$_id"},
		{Key: "createdAt", Value: "$createdAt"},
		{Key: "updatedAt", Value: bson.D{{Key: "$literal", Value: updatedAt}}},
	}
	pipeline := mongo.Pipeline{
		{{Key: "$replaceWith", Value: bson.D{{Key: "$mergeObjects", Value: bson.A{
			bson.D{{Key: "$literal", Value: fields}},
			kept,
		}}}}},
	}

	res, err := s.coll.UpdateOne(ctx, byID(id), pipeline)
	if err != nil {
		return store.NewStoreError(s.coll.Name(), "replace", err)
	}
	if res.MatchedCount == 0 {
		return store.NewStoreError(s.coll.Name(), "replace", store.ErrNotFound)
	}

	return nil
}

// DeleteByID removes the document with the given id.
func (s *DocumentStore[R]) DeleteByID(ctx context.Context, id bson.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return store.NewStoreError(s.coll.Name(), "delete", err)
	}
	if res.DeletedCount == 0 {
		return store.NewStoreError(s.coll.Name(), "delete", store.ErrNotFound)
	}

	return nil
}
