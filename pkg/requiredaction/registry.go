package requiredaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tendant/verify-email-code/pkg/emailcode"
	"github.com/tendant/verify-email-code/pkg/sessions"
	"github.com/tendant/verify-email-code/pkg/user"
)

var (
	ErrProviderNotFound  = errors.New("required action provider not found")
	ErrDuplicateProvider = errors.New("required action provider already registered")
	ErrInvalidProvider   = errors.New("required action provider needs an id and an action")
)

var _ Action = (*emailcode.Controller)(nil)

// Action is a step the login flow forces a user through before it completes
type Action interface {
	RequestChallenge(ctx context.Context, session *sessions.Session, u *user.User) (emailcode.Outcome, error)
	ProcessSubmission(ctx context.Context, session *sessions.Session, u *user.User, submitted *string) (emailcode.Outcome, error)
}

type Provider struct {
	ID          string `json:"id"`
	DisplayText string `json:"display_text"`
	Action      Action `json:"-"`
}

// Registry keeps providers in registration order
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	byID      map[string]int
}

func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]int),
	}
}

// Register adds a provider. Ids must be unique.
func (r *Registry) Register(p Provider) error {
	if p.ID == "" || p.Action == nil {
		return ErrInvalidProvider
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, p.ID)
	}
	r.byID[p.ID] = len(r.providers)
	r.providers = append(r.providers, p)

	slog.Info("Registered required action", "id", p.ID, "display_text", p.DisplayText)
	return nil
}

func (r *Registry) Get(id string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return Provider{}, fmt.Errorf("%w: %s", ErrProviderNotFound, id)
	}
	return r.providers[i], nil
}

// Providers returns a copy of the registered providers
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, len(r.providers))
	copy(providers, r.providers)
	return providers
}
