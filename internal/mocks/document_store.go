package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/anime-api/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MockDocumentStore is an in-memory store.DocumentStore. Documents round-trip
// through BSON so records decode exactly as they would from MongoDB, including
// millisecond precision on timestamps.
type MockDocumentStore[R any] struct {
	// Collection names the collection in returned errors.
	Collection string

	// Err, when set, is returned from every operation.
	Err error

	mu    sync.Mutex
	order []bson.ObjectID
	docs  map[bson.ObjectID]bson.D

	// Calls counts invocations per operation name.
	Calls map[string]int
}

var _ store.DocumentStore[struct{}] = (*MockDocumentStore[struct{}])(nil)

// NewMockDocumentStore returns an empty store for collection.
func NewMockDocumentStore[R any](collection string) *MockDocumentStore[R] {
	return &MockDocumentStore[R]{
		Collection: collection,
		docs:       make(map[bson.ObjectID]bson.D),
		Calls:      make(map[string]int),
	}
}

func (m *MockDocumentStore[R]) record(op string) error {
	m.Calls[op]++
	if m.Err != nil {
		return store.NewStoreError(m.Collection, op, m.Err)
	}
	return nil
}

// FindAll returns every document in insertion order.
func (m *MockDocumentStore[R]) FindAll(ctx context.Context) ([]R, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("find"); err != nil {
		return nil, err
	}

	records := make([]R, 0, len(m.order))
	for _, id := range m.order {
		r, err := decode[R](m.docs[id])
		if err != nil {
			return nil, store.NewStoreError(m.Collection, "find", err)
		}
		records = append(records, r)
	}
	return records, nil
}

// FindByID returns the document with id.
func (m *MockDocumentStore[R]) FindByID(ctx context.Context, id bson.ObjectID) (R, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero R
	if err := m.record("find"); err != nil {
		return zero, err
	}

	doc, ok := m.docs[id]
	if !ok {
		return zero, store.NewStoreError(m.Collection, "find", store.ErrNotFound)
	}

	r, err := decode[R](doc)
	if err != nil {
		return zero, store.NewStoreError(m.Collection, "find", err)
	}
	return r, nil
}

// InsertOne stores doc under a fresh ObjectID.
func (m *MockDocumentStore[R]) InsertOne(ctx context.Context, doc any) (bson.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("insert"); err != nil {
		return bson.NilObjectID, err
	}

	fields, err := toD(doc)
	if err != nil {
		return bson.NilObjectID, store.NewStoreError(m.Collection, "insert", err)
	}

	id := bson.NewObjectID()
	m.docs[id] = append(bson.D{{Key: "_id", Value: id}}, fields...)
	m.order = append(m.order, id)
	return id, nil
}

// ReplaceByID rebuilds the document from fields, keeping _id and createdAt.
func (m *MockDocumentStore[R]) ReplaceByID(ctx context.Context, id bson.ObjectID, fields any, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("update"); err != nil {
		return err
	}

	existing, ok := m.docs[id]
	if !ok {
		return store.NewStoreError(m.Collection, "update", store.ErrNotFound)
	}

	replacement, err := toD(fields)
	if err != nil {
		return store.NewStoreError(m.Collection, "update", err)
	}

	doc := bson.D{{Key: "_id", Value: id}}
	doc = append(doc, replacement...)
	for _, e := range existing {
		if e.Key == "createdAt" {
			doc = append(doc, e)
		}
	}
	doc = append(doc, bson.E{Key: "updatedAt", Value: updatedAt})

	m.docs[id] = doc
	return nil
}

// DeleteByID removes the document with id.
func (m *MockDocumentStore[R]) DeleteByID(ctx context.Context, id bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("delete"); err != nil {
		return err
	}

	if _, ok := m.docs[id]; !ok {
		return store.NewStoreError(m.Collection, "delete", store.ErrNotFound)
	}

	delete(m.docs, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored documents.
func (m *MockDocumentStore[R]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// Raw returns the stored BSON document for id.
func (m *MockDocumentStore[R]) Raw(id bson.ObjectID) (bson.D, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	return doc, ok
}

func toD(v any) (bson.D, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}

func decode[R any](doc bson.D) (R, error) {
	var r R
	raw, err := bson.Marshal(doc)
	if err != nil {
		return r, err
	}
	err = bson.Unmarshal(raw, &r)
	return r, err
}
