// Package id generates job identifiers.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces unique job IDs.
type Generator interface {
	NewID() (string, error)
}

// UUID generates random (v4) identifiers.
type UUID struct{}

// NewID returns a new UUID string.
func (UUID) NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return u.String(), nil
}
