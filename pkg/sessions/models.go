package sessions

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is one in-progress login attempt. Notes bound to the session
// are stored by the repository, not on this struct.
type Session struct {
	ID        uuid.UUID `json:"id"`
	TabID     string    `json:"tab_id"`
	ClientID  string    `json:"client_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CompoundID identifies the session, browser tab and client together.
// It is embedded in action tokens so a clicked link resumes the same tab.
func (s Session) CompoundID() string {
	return s.ID.String() + "." + s.TabID + "." + s.ClientID
}

// ParseCompoundID splits a compound id created by CompoundID.
func ParseCompoundID(compoundID string) (uuid.UUID, string, string, error) {
	idPart, rest, ok := strings.Cut(compoundID, ".")
	if !ok {
		return uuid.Nil, "", "", ErrInvalidCompoundID
	}
	tabID, clientID, ok := strings.Cut(rest, ".")
	if !ok || tabID == "" {
		return uuid.Nil, "", "", ErrInvalidCompoundID
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, "", "", ErrInvalidCompoundID
	}
	return id, tabID, clientID, nil
}

// CreateSessionRequest represents the request to create a new session
type CreateSessionRequest struct {
	ClientID string        `json:"client_id"`
	UserID   uuid.UUID     `json:"user_id"`
	TTL      time.Duration `json:"-"`
}

// DefaultSessionTTL bounds how long an authentication session lives.
const DefaultSessionTTL = 30 * time.Minute
