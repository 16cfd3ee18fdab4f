package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type inMemSession struct {
	session Session
	notes   map[string]string
}

// InMemorySessionRepository keeps sessions in process memory.
type InMemorySessionRepository struct {
	sessions map[uuid.UUID]*inMemSession
	mu       sync.RWMutex
	now      func() time.Time
}

// NewInMemorySessionRepository creates a new in-memory session repository
func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[uuid.UUID]*inMemSession),
		now:      time.Now,
	}
}

func (r *InMemorySessionRepository) Create(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	tabID, err := newTabID()
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	session := Session{
		ID:        uuid.New(),
		TabID:     tabID,
		ClientID:  req.ClientID,
		UserID:    req.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL(req)),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = &inMemSession{
		session: session,
		notes:   make(map[string]string),
	}

	sessionCopy := session
	return &sessionCopy, nil
}

func (r *InMemorySessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, err := r.live(id)
	if err != nil {
		return nil, err
	}

	sessionCopy := entry.session
	return &sessionCopy, nil
}

func (r *InMemorySessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *InMemorySessionRepository) GetNote(ctx context.Context, id uuid.UUID, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, err := r.live(id)
	if err != nil {
		return "", false, err
	}

	value, ok := entry.notes[key]
	return value, ok, nil
}

func (r *InMemorySessionRepository) SetNote(ctx context.Context, id uuid.UUID, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.live(id)
	if err != nil {
		return err
	}

	entry.notes[key] = value
	return nil
}

func (r *InMemorySessionRepository) RemoveNote(ctx context.Context, id uuid.UUID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.live(id)
	if err != nil {
		return err
	}

	delete(entry.notes, key)
	return nil
}

// live returns the session entry if it exists and has not expired.
// Callers must hold the lock.
func (r *InMemorySessionRepository) live(id uuid.UUID) (*inMemSession, error) {
	entry, exists := r.sessions[id]
	if !exists || !r.now().Before(entry.session.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}
