package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// isNotFound reports whether a repository error means the document does
// not exist.
func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// isDuplicate reports whether a repository error is a unique index
// violation.
func isDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
