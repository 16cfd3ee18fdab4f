package emailcode

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/tendant/verify-email-code/pkg/actiontoken"
	"github.com/tendant/verify-email-code/pkg/notification"
	"github.com/tendant/verify-email-code/pkg/sessions"
	"github.com/tendant/verify-email-code/pkg/user"
	"github.com/tendant/verify-email-code/pkg/utils"
	"github.com/tendant/verify-email-code/pkg/verifycode"
)

// Controller runs the verify email with code required action. It holds
// no per-session state; everything lives in the session notes.
type Controller struct {
	cfg          Config
	state        stateStore
	users        UserStore
	links        LinkIssuer
	notifier     Notifier
	generator    verifycode.Generator
	testAccounts map[string]struct{}
	now          func() time.Time
}

// NewController validates cfg and deps and returns a ready controller.
func NewController(cfg Config, deps Dependencies, opts ...Option) (*Controller, error) {
	if deps.Notes == nil || deps.Users == nil || deps.Notifier == nil {
		return nil, ErrMissingDependency
	}

	if cfg.CodeFormat == (verifycode.CodeFormat{}) {
		cfg.CodeFormat = verifycode.DefaultFormat
	}
	if cfg.CodeFormat.Length <= 0 {
		return nil, &verifycode.InvalidFormatError{Format: cfg.CodeFormat.String(), Err: verifycode.ErrInvalidLength}
	}
	if cfg.LinkLifespan <= 0 {
		cfg.LinkLifespan = DefaultLinkLifespan
	}
	if len(cfg.TestAccounts) > 0 && cfg.TestCode == "" {
		return nil, ErrTestCodeRequired
	}
	cfg.TestAccounts = append([]string(nil), cfg.TestAccounts...)

	c := &Controller{
		cfg:          cfg,
		state:        stateStore{notes: deps.Notes},
		users:        deps.Users,
		links:        deps.Links,
		notifier:     deps.Notifier,
		generator:    deps.Generator,
		testAccounts: make(map[string]struct{}, len(cfg.TestAccounts)),
		now:          time.Now,
	}
	if c.generator == nil {
		c.generator = verifycode.NewRandomGenerator()
	}
	for _, email := range cfg.TestAccounts {
		c.testAccounts[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	for _, opt := range opts {
		opt(c)
	}

	if len(c.testAccounts) > 0 {
		slog.Warn("Fixed verification code enabled for test accounts", "count", len(c.testAccounts))
	}
	slog.Info("Verify email with code configured",
		"code_format", cfg.CodeFormat.String(),
		"link_lifespan", cfg.LinkLifespan,
		"link_issuer", c.links != nil)

	return c, nil
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() Config {
	cfg := c.cfg
	cfg.TestAccounts = append([]string(nil), c.cfg.TestAccounts...)
	return cfg
}

// RequestChallenge shows the code entry form, sending a new code only when
// none was sent yet for the user's current email.
func (c *Controller) RequestChallenge(ctx context.Context, session *sessions.Session, u *user.User) (Outcome, error) {
	return c.requestChallenge(ctx, session, u, Form{})
}

func (c *Controller) requestChallenge(ctx context.Context, session *sessions.Session, u *user.User, form Form) (Outcome, error) {
	if u.EmailVerified {
		if err := c.state.clear(ctx, session.ID); err != nil {
			return Outcome{}, err
		}
		return Outcome{Status: StatusSuccess, State: StateAlreadyVerified, Delivery: DeliveryNone}, nil
	}

	if strings.TrimSpace(u.Email) == "" {
		slog.Debug("User has no email, skipping verification", "user_id", u.ID)
		return Outcome{Status: StatusIgnore, State: StateNoChallengeYet, Delivery: DeliveryNone}, nil
	}

	state, err := c.state.load(ctx, session.ID)
	if err != nil {
		return Outcome{}, err
	}

	form.Template = TemplateVerifyEmailCode
	form.Email = u.Email

	// A reload must not send a second email; resending goes through an empty submission.
	if state.BoundTo(u.Email) {
		return Outcome{Status: StatusChallenge, State: StateAwaitingResubmission, Form: form, Delivery: DeliveryNone}, nil
	}

	code, err := c.codeFor(u.Email)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to generate verification code: %w", err)
	}

	state = VerificationState{PendingEmail: u.Email, PendingCode: code}
	if err := c.state.bind(ctx, session.ID, state); err != nil {
		return Outcome{}, err
	}

	delivery := c.sendCode(ctx, session, u, code)
	return Outcome{Status: StatusChallenge, State: StateChallengeActive, Form: form, Delivery: delivery}, nil
}

// ProcessSubmission checks a submitted code. A nil code means the request
// carried no form body and is treated as a request for a new code.
func (c *Controller) ProcessSubmission(ctx context.Context, session *sessions.Session, u *user.User, submitted *string) (Outcome, error) {
	state, err := c.state.load(ctx, session.ID)
	if err != nil {
		return Outcome{}, err
	}

	// A code sent to a previous address never verifies the current one.
	if !state.BoundTo(u.Email) {
		return c.requestChallenge(ctx, session, u, Form{})
	}

	if submitted == nil {
		if err := c.state.clear(ctx, session.ID); err != nil {
			return Outcome{}, err
		}
		return c.requestChallenge(ctx, session, u, Form{Info: InfoNewCodeSent})
	}

	if subtle.ConstantTimeCompare([]byte(*submitted), []byte(state.PendingCode)) != 1 {
		slog.Info("Invalid verification code submitted", "user_id", u.ID, "session_id", session.ID)
		return Outcome{
			Status: StatusChallenge,
			State:  StateAwaitingResubmission,
			Form: Form{
				Template: TemplateVerifyEmailCode,
				Email:    u.Email,
				Error:    ErrorInvalidCode,
			},
			Delivery: DeliveryNone,
		}, nil
	}

	return c.markVerified(ctx, session, u)
}

// ConfirmLink completes verification from a clicked fallback link. email is
// the address the link was issued for.
func (c *Controller) ConfirmLink(ctx context.Context, session *sessions.Session, u *user.User, email string) (Outcome, error) {
	if u.EmailVerified {
		if err := c.state.clear(ctx, session.ID); err != nil {
			return Outcome{}, err
		}
		return Outcome{Status: StatusSuccess, State: StateAlreadyVerified, Delivery: DeliveryNone}, nil
	}

	if email == "" || email != u.Email {
		slog.Warn("Verification link email does not match user", "user_id", u.ID)
		return Outcome{}, ErrLinkEmailMismatch
	}

	return c.markVerified(ctx, session, u)
}

// Shutdown closes collaborators that hold resources.
func (c *Controller) Shutdown(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var errs []error
	for _, dep := range []any{c.notifier, c.links, c.users, c.state.notes} {
		if closer, ok := dep.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Controller) markVerified(ctx context.Context, session *sessions.Session, u *user.User) (Outcome, error) {
	if err := c.users.MarkEmailVerified(ctx, u.ID); err != nil {
		return Outcome{}, fmt.Errorf("failed to mark email verified: %w", err)
	}
	u.EmailVerified = true

	if err := c.state.clear(ctx, session.ID); err != nil {
		return Outcome{}, err
	}

	slog.Info("Email verified", "user_id", u.ID, "session_id", session.ID)
	return Outcome{Status: StatusSuccess, State: StateVerified, Delivery: DeliveryNone}, nil
}

func (c *Controller) codeFor(email string) (string, error) {
	if _, ok := c.testAccounts[strings.ToLower(email)]; ok {
		return c.cfg.TestCode, nil
	}
	return c.generator.Generate(c.cfg.CodeFormat)
}

// sendCode never fails the challenge. Without a link the code still works.
func (c *Controller) sendCode(ctx context.Context, session *sessions.Session, u *user.User, code string) Delivery {
	lifespan := c.cfg.LinkLifespan
	expiresAt := c.now().UTC().Add(lifespan)

	link := ""
	if c.links != nil {
		var err error
		link, err = c.links.Issue(ctx, actiontoken.LinkRequest{
			UserID:            u.ID,
			ExpiresAt:         expiresAt,
			SessionCompoundID: session.CompoundID(),
			Email:             u.Email,
			ClientID:          session.ClientID,
			TabID:             session.TabID,
		})
		if err != nil {
			slog.Error("Failed to issue verification link", "user_id", u.ID, "err", err)
			link = ""
		}
	}

	data := notification.NotificationData{
		To: u.Email,
		Data: map[string]any{
			"code":                  code,
			"user":                  u,
			"link":                  link,
			"linkExpiration":        int(lifespan / time.Second),
			"linkExpirationMinutes": int(lifespan / time.Minute),
			"realmName":             c.cfg.RealmName,
		},
	}

	if err := c.notifier.Send(notification.EmailVerificationCodeNotice, data); err != nil {
		slog.Error("Failed to send verification email", "event", EventSendVerifyEmail, "error", EventEmailSendFailed, "user_id", u.ID, "email", utils.MaskEmail(u.Email), "err", err)
		return DeliveryFailed
	}

	slog.Info("Verification code sent", "event", EventSendVerifyEmail, "user_id", u.ID, "email", utils.MaskEmail(u.Email), "session_id", session.ID)
	return DeliverySent
}
