package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines storage for users and their verification flag
type Repository interface {
	CreateUser(ctx context.Context, email string) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
}
