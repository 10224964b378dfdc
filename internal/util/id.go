package util

import "github.com/google/uuid"

// NewID returns a UUID string used as the primary key for all records.
func NewID() string {
	return uuid.NewString()
}
