package user

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

type UserService struct {
	repo Repository
}

func NewUserService(repo Repository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) CreateUser(ctx context.Context, email string) (*User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, normalized)
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

// MarkEmailVerified is idempotent; verifying an already verified user is a no-op.
func (s *UserService) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		slog.Debug("Email already verified", "user_id", id)
		return nil
	}
	if err := s.repo.MarkEmailVerified(ctx, id); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	slog.Info("Email marked verified", "user_id", id)
	return nil
}

func (s *UserService) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	return s.repo.UpdateEmail(ctx, id, normalized)
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}
