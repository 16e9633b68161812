package core

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier.
// Version 7 UUIDs sort by creation time; a random UUID is used if the
// time-based generator fails.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
