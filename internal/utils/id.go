package utils

import "github.com/google/uuid"

// NewID returns a unique identifier for a live connection.
func NewID() string {
	return uuid.NewString()
}
