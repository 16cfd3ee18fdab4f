package config

import "github.com/tendant/verify-email-code/pkg/actiontoken"

// ActionTokenConfig configures the signed fallback links
type ActionTokenConfig struct {
	Secret  string `env:"ACTION_TOKEN_SECRET" env-default:"very-secure-action-token-secret"`
	Issuer  string `env:"ACTION_TOKEN_ISSUER" env-default:"verify-email-code"`
	BaseURL string `env:"ACTION_TOKEN_BASE_URL" env-default:"http://localhost:3000"`
}

func (a ActionTokenConfig) NewIssuer(opts ...actiontoken.Option) (*actiontoken.Issuer, error) {
	return actiontoken.NewIssuer(a.Secret, a.Issuer, a.BaseURL, opts...)
}

func (a ActionTokenConfig) Validate() ValidationErrors {
	return CollectErrors(
		RequireNonEmpty("ACTION_TOKEN_SECRET", a.Secret),
		RequireValidURL("ACTION_TOKEN_BASE_URL", a.BaseURL),
	)
}
