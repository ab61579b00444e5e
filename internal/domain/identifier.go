package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IDLength is the length of the hex form of a record identifier.
const IDLength = 24

// ParseID converts an externally supplied identifier into a document key.
// Exactly 24 hexadecimal characters are accepted, in either case.
func ParseID(raw string) (bson.ObjectID, error) {
	if len(raw) != IDLength {
		return bson.NilObjectID, fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidID, IDLength, len(raw))
	}

	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidID, raw)
	}

	return id, nil
}
