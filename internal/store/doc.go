// Package store defines the persistence contract used by the resource handlers.
// It abstracts the document database behind a small generic interface so the
// HTTP layer can be exercised against an in-memory implementation in tests.
package store
