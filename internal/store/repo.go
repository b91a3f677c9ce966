package store

import (
	"context"
	"errors"
)

// ErrNoBackend is returned when a repo is used without a configured backend.
var ErrNoBackend = errors.New("store: backend not configured")

// DocumentRepo persists one opaque performance document per user. The
// payload format belongs to the caller; repos only move bytes.
type DocumentRepo interface {
	// Load returns the stored payload, or nil if the user has none.
	Load(ctx context.Context, userID string) ([]byte, error)

	// Save overwrites the user's payload. Last writer wins.
	Save(ctx context.Context, userID string, data []byte) error

	// Delete removes the user's payload. Deleting a missing record is not an error.
	Delete(ctx context.Context, userID string) error
}
