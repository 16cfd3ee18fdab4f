package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryUserRepository implements Repository using an in-memory map
type InMemoryUserRepository struct {
	users map[uuid.UUID]*User
	mu    sync.RWMutex
}

// NewInMemoryUserRepository creates a new in-memory user repository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[uuid.UUID]*User),
	}
}

func (r *InMemoryUserRepository) CreateUser(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, email) {
			return nil, ErrUserAlreadyExists
		}
	}

	u := &User{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	r.users[u.ID] = u

	userCopy := *u
	return &userCopy, nil
}

func (r *InMemoryUserRepository) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}

	userCopy := *u
	return &userCopy, nil
}

func (r *InMemoryUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[id]
	if !exists {
		return ErrUserNotFound
	}

	now := time.Now().UTC()
	u.EmailVerified = true
	u.EmailVerifiedAt = &now
	return nil
}

// UpdateEmail changes a user's address and resets the verified flag.
func (r *InMemoryUserRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[id]
	if !exists {
		return ErrUserNotFound
	}

	u.Email = email
	u.EmailVerified = false
	u.EmailVerifiedAt = nil
	return nil
}
