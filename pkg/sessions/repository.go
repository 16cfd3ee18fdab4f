package sessions

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines storage for authentication sessions and their notes
type Repository interface {
	// Create a new session
	Create(ctx context.Context, req CreateSessionRequest) (*Session, error)

	// Get a session by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)

	// Delete a session and all of its notes
	Delete(ctx context.Context, id uuid.UUID) error

	// GetNote reads a note; ok is false when the note is absent
	GetNote(ctx context.Context, id uuid.UUID, key string) (value string, ok bool, err error)

	// SetNote writes a note, replacing any previous value
	SetNote(ctx context.Context, id uuid.UUID, key, value string) error

	// RemoveNote deletes a note; removing an absent note is not an error
	RemoveNote(ctx context.Context, id uuid.UUID, key string) error
}

func validateCreateRequest(req CreateSessionRequest) error {
	if req.ClientID == "" {
		return ErrClientIDRequired
	}
	return nil
}

// newTabID returns a short random identifier for a browser tab.
func newTabID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate tab id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func sessionTTL(req CreateSessionRequest) time.Duration {
	if req.TTL > 0 {
		return req.TTL
	}
	return DefaultSessionTTL
}
