package emailcode

import (
	"time"

	"github.com/tendant/verify-email-code/pkg/verifycode"
)

// DefaultLinkLifespan applies when Config.LinkLifespan is not set
const DefaultLinkLifespan = 5 * time.Minute

// Config is fixed for the lifetime of a Controller.
type Config struct {
	CodeFormat   verifycode.CodeFormat
	LinkLifespan time.Duration
	RealmName    string

	// TestAccounts receive TestCode instead of a generated code.
	// Leave empty outside of test environments.
	TestAccounts []string
	TestCode     string
}

// Dependencies are the collaborators a Controller drives. Links and
// Generator are optional.
type Dependencies struct {
	Notes     SessionNotes
	Users     UserStore
	Links     LinkIssuer
	Notifier  Notifier
	Generator verifycode.Generator
}

// Option configures a Controller
type Option func(*Controller)

// WithClock sets the time source used to compute link expiry
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}
