package emailcode

import (
	"context"

	"github.com/google/uuid"
	"github.com/tendant/verify-email-code/pkg/actiontoken"
	"github.com/tendant/verify-email-code/pkg/notification"
)

// Provider identity for the required action registry
const (
	ProviderID  = "VERIFY_EMAIL_WITH_CODE"
	DisplayText = "Verify Email with Code"
)

// Form and message keys understood by the login UI
const (
	TemplateVerifyEmailCode = "login-verify-email-code"
	InfoNewCodeSent         = "newCodeSent"
	ErrorInvalidCode        = "invalidCode"
)

// Log event names for the delivery signal
const (
	EventSendVerifyEmail = "SEND_VERIFY_EMAIL"
	EventEmailSendFailed = "EMAIL_SEND_FAILED"
)

// Status tells the authentication flow what to do next.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusIgnore    Status = "ignore"
	StatusChallenge Status = "challenge"
)

type State string

const (
	StateAlreadyVerified      State = "already_verified"
	StateNoChallengeYet       State = "no_challenge_yet"
	StateChallengeActive      State = "challenge_active"
	StateAwaitingResubmission State = "awaiting_resubmission"
	StateVerified             State = "verified"
)

// Delivery reports the result of sending the verification email, if one was sent.
type Delivery string

const (
	DeliveryNone   Delivery = "none"
	DeliverySent   Delivery = "sent"
	DeliveryFailed Delivery = "failed"
)

// Form is the code entry page to render. Empty Template means nothing to show.
type Form struct {
	Template string `json:"template,omitempty"`
	Email    string `json:"email,omitempty"`
	Info     string `json:"info,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Outcome struct {
	Status   Status   `json:"status"`
	State    State    `json:"state"`
	Form     Form     `json:"form"`
	Delivery Delivery `json:"delivery"`
}

// UserStore persists the verified flag.
type UserStore interface {
	MarkEmailVerified(ctx context.Context, userID uuid.UUID) error
}

// LinkIssuer turns a pending challenge into a signed fallback URL.
type LinkIssuer interface {
	Issue(ctx context.Context, req actiontoken.LinkRequest) (string, error)
}

// Notifier delivers the verification email.
type Notifier interface {
	Send(noticeType notification.NoticeType, data notification.NotificationData) error
}
