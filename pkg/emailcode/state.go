package emailcode

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Session note keys. Nothing else in the module reads or writes these.
const (
	NoteVerifyEmail     = "VERIFY_EMAIL_KEY"
	NoteVerifyEmailCode = "VERIFY_EMAIL_CODE"
)

// SessionNotes is the per-session key/value store the verification state lives in.
type SessionNotes interface {
	GetNote(ctx context.Context, sessionID uuid.UUID, key string) (string, bool, error)
	SetNote(ctx context.Context, sessionID uuid.UUID, key, value string) error
	RemoveNote(ctx context.Context, sessionID uuid.UUID, key string) error
}

// VerificationState is the challenge bound to one authentication session.
// PendingCode is set if and only if PendingEmail is set.
type VerificationState struct {
	PendingEmail string
	PendingCode  string
}

func (s VerificationState) HasEmail() bool {
	return s.PendingEmail != ""
}

func (s VerificationState) HasCode() bool {
	return s.PendingCode != ""
}

// BoundTo reports whether a challenge was already issued for email.
func (s VerificationState) BoundTo(email string) bool {
	return s.HasCode() && s.PendingEmail == email
}

func (s *VerificationState) Clear() {
	s.PendingEmail = ""
	s.PendingCode = ""
}

type stateStore struct {
	notes SessionNotes
}

func (s stateStore) load(ctx context.Context, sessionID uuid.UUID) (VerificationState, error) {
	email, _, err := s.notes.GetNote(ctx, sessionID, NoteVerifyEmail)
	if err != nil {
		return VerificationState{}, fmt.Errorf("failed to read verification email: %w", err)
	}
	code, _, err := s.notes.GetNote(ctx, sessionID, NoteVerifyEmailCode)
	if err != nil {
		return VerificationState{}, fmt.Errorf("failed to read verification code: %w", err)
	}

	state := VerificationState{PendingEmail: email, PendingCode: code}
	if state.HasEmail() != state.HasCode() {
		// half-written state from an earlier failure; start over
		slog.Warn("Discarding partial verification state", "session_id", sessionID)
		return VerificationState{}, nil
	}
	return state, nil
}

func (s stateStore) bind(ctx context.Context, sessionID uuid.UUID, state VerificationState) error {
	if err := s.notes.SetNote(ctx, sessionID, NoteVerifyEmailCode, state.PendingCode); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	if err := s.notes.SetNote(ctx, sessionID, NoteVerifyEmail, state.PendingEmail); err != nil {
		return fmt.Errorf("failed to store verification email: %w", err)
	}
	return nil
}

func (s stateStore) clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.notes.RemoveNote(ctx, sessionID, NoteVerifyEmail); err != nil {
		return fmt.Errorf("failed to remove verification email: %w", err)
	}
	if err := s.notes.RemoveNote(ctx, sessionID, NoteVerifyEmailCode); err != nil {
		return fmt.Errorf("failed to remove verification code: %w", err)
	}
	return nil
}
