package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tendant/verify-email-code/pkg/emailcode"
	"github.com/tendant/verify-email-code/pkg/verifycode"
)

// VerifyEmailCodeConfig configures the verify email with code required action
type VerifyEmailCodeConfig struct {
	// Format is "<charset>-<length>", e.g. "digits-6". Empty means alphanum-8.
	Format       string        `env:"VERIFY_EMAIL_CODE_FORMAT" env-default:""`
	LinkLifespan time.Duration `env:"VERIFY_EMAIL_LINK_LIFESPAN" env-default:"5m"`
	RealmName    string        `env:"VERIFY_EMAIL_REALM_NAME" env-default:"simple-idm"`
	TestAccounts []string      `env:"VERIFY_EMAIL_TEST_ACCOUNTS" env-separator:","`
	TestCode     string        `env:"VERIFY_EMAIL_TEST_CODE"`
}

// CodeFormat parses Format.
func (v VerifyEmailCodeConfig) CodeFormat() (verifycode.CodeFormat, error) {
	return verifycode.ParseFormat(v.Format)
}

// ToControllerConfig builds the immutable controller configuration.
func (v VerifyEmailCodeConfig) ToControllerConfig() (emailcode.Config, error) {
	format, err := v.CodeFormat()
	if err != nil {
		return emailcode.Config{}, fmt.Errorf("VERIFY_EMAIL_CODE_FORMAT: %w", err)
	}

	var accounts []string
	for _, account := range v.TestAccounts {
		if account = strings.TrimSpace(account); account != "" {
			accounts = append(accounts, account)
		}
	}

	return emailcode.Config{
		CodeFormat:   format,
		LinkLifespan: v.LinkLifespan,
		RealmName:    v.RealmName,
		TestAccounts: accounts,
		TestCode:     v.TestCode,
	}, nil
}

func (v VerifyEmailCodeConfig) Validate() ValidationErrors {
	var errs ValidationErrors
	if _, err := v.CodeFormat(); err != nil {
		errs = append(errs, ValidationError{Field: "VERIFY_EMAIL_CODE_FORMAT", Message: err.Error()})
	}
	errs = append(errs, CollectErrors(
		RequirePositiveDuration("VERIFY_EMAIL_LINK_LIFESPAN", v.LinkLifespan),
	)...)
	for _, account := range v.TestAccounts {
		account = strings.TrimSpace(account)
		if err := WhenSet(account, func() *ValidationError {
			return RequireValidEmail("VERIFY_EMAIL_TEST_ACCOUNTS", account)
		}); err != nil {
			errs = append(errs, *err)
		}
	}
	if len(v.TestAccounts) > 0 && v.TestCode == "" {
		errs = append(errs, ValidationError{Field: "VERIFY_EMAIL_TEST_CODE", Message: "is required when test accounts are set"})
	}
	return errs
}
