package actiontoken

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TypeVerifyEmail marks tokens that confirm ownership of an email address.
const TypeVerifyEmail = "verify-email"

// VerifyEmailClaims is the payload of a verify email action token.
type VerifyEmailClaims struct {
	Type              string `json:"typ"`
	SessionCompoundID string `json:"asid"`
	Email             string `json:"eml"`
	ClientID          string `json:"azp"`
	jwt.RegisteredClaims
}

// LinkRequest describes the fallback link to issue for a pending challenge.
type LinkRequest struct {
	UserID            uuid.UUID
	ExpiresAt         time.Time
	SessionCompoundID string
	Email             string
	ClientID          string
	TabID             string
}

// Issuer signs verify email action tokens and turns them into links.
type Issuer struct {
	secret  []byte
	issuer  string
	baseURL *url.URL
	now     func() time.Time
}

type Option func(*Issuer)

// WithClock replaces the time source used for iat and expiry checks
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer creates an HS256 issuer. baseURL is the public root links point to.
func NewIssuer(secret, issuer, baseURL string, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	i := &Issuer{
		secret:  []byte(secret),
		issuer:  issuer,
		baseURL: u,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i, nil
}

// Issue signs a token for req and returns the link that consumes it.
func (i *Issuer) Issue(ctx context.Context, req LinkRequest) (string, error) {
	token, err := i.Sign(req)
	if err != nil {
		return "", err
	}

	link := i.baseURL.JoinPath("login-actions", "action-token")
	q := link.Query()
	q.Set("key", token)
	q.Set("client_id", req.ClientID)
	q.Set("tab_id", req.TabID)
	link.RawQuery = q.Encode()

	return link.String(), nil
}

// Sign returns the serialized token for req.
func (i *Issuer) Sign(req LinkRequest) (string, error) {
	claims := VerifyEmailClaims{
		Type:              TypeVerifyEmail,
		SessionCompoundID: req.SessionCompoundID,
		Email:             req.Email,
		ClientID:          req.ClientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   req.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(req.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(i.now().UTC()),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(i.secret)
	if err != nil {
		slog.Error("Failed to sign action token", "err", err)
		return "", fmt.Errorf("failed to sign action token: %w", err)
	}
	return ss, nil
}

// Parse validates a token produced by Sign and returns its claims.
func (i *Issuer) Parse(tokenStr string) (*VerifyEmailClaims, error) {
	claims := &VerifyEmailClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		slog.Warn("Rejected action token", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Type != TypeVerifyEmail {
		return nil, ErrWrongTokenType
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return claims, nil
}

// UserID returns the subject of the token as a user id.
func (c *VerifyEmailClaims) UserID() uuid.UUID {
	id, _ := uuid.Parse(c.Subject)
	return id
}
