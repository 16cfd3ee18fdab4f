package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/verify-email-code/pkg/verifycode"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.VerifyEmailCode.LinkLifespan)
	assert.Equal(t, StoreMemory, cfg.Persistence.Users)
	assert.Equal(t, StoreMemory, cfg.Persistence.Sessions)

	format, err := cfg.VerifyEmailCode.CodeFormat()
	require.NoError(t, err)
	assert.Equal(t, verifycode.DefaultFormat, format)
}

func TestLoadVerifyEmailCode(t *testing.T) {
	t.Setenv("VERIFY_EMAIL_CODE_FORMAT", "digits-6")
	t.Setenv("VERIFY_EMAIL_LINK_LIFESPAN", "15m")
	t.Setenv("VERIFY_EMAIL_REALM_NAME", "Example")
	t.Setenv("VERIFY_EMAIL_TEST_ACCOUNTS", "qa@example.com, dev@example.com,")
	t.Setenv("VERIFY_EMAIL_TEST_CODE", "000000")

	cfg, err := Load()
	require.NoError(t, err)

	controllerCfg, err := cfg.VerifyEmailCode.ToControllerConfig()
	require.NoError(t, err)
	assert.Equal(t, verifycode.CodeFormat{Charset: verifycode.CharsetDigits, Length: 6}, controllerCfg.CodeFormat)
	assert.Equal(t, 15*time.Minute, controllerCfg.LinkLifespan)
	assert.Equal(t, "Example", controllerCfg.RealmName)
	assert.Equal(t, []string{"qa@example.com", "dev@example.com"}, controllerCfg.TestAccounts)
	assert.Equal(t, "000000", controllerCfg.TestCode)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{
			name:  "non numeric code length",
			env:   map[string]string{"VERIFY_EMAIL_CODE_FORMAT": "foo-bar"},
			field: "VERIFY_EMAIL_CODE_FORMAT",
		},
		{
			name:  "test accounts without code",
			env:   map[string]string{"VERIFY_EMAIL_TEST_ACCOUNTS": "qa@example.com"},
			field: "VERIFY_EMAIL_TEST_CODE",
		},
		{
			name:  "malformed test account",
			env:   map[string]string{"VERIFY_EMAIL_TEST_ACCOUNTS": "qa@example.com,not-an-email", "VERIFY_EMAIL_TEST_CODE": "000000"},
			field: "VERIFY_EMAIL_TEST_ACCOUNTS",
		},
		{
			name:  "unknown session store",
			env:   map[string]string{"SESSION_STORE": "memcached"},
			field: "SESSION_STORE",
		},
		{
			name:  "postgres with port zero",
			env:   map[string]string{"USER_STORE": "postgres", "VERIFY_PG_PORT": "0"},
			field: "VERIFY_PG_PORT",
		},
		{
			name:  "bad sender",
			env:   map[string]string{"EMAIL_FROM": "Mailer <noreply@example.com>"},
			field: "EMAIL_FROM",
		},
		{
			name:  "relative base url",
			env:   map[string]string{"ACTION_TOKEN_BASE_URL": "/login"},
			field: "ACTION_TOKEN_BASE_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)

			var errs ValidationErrors
			require.True(t, errors.As(err, &errs), err)
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("VERIFY_EMAIL_REALM_NAME=FromFile\n"), 0o600))
	t.Setenv("VERIFY_EMAIL_REALM_NAME", "")
	os.Unsetenv("VERIFY_EMAIL_REALM_NAME")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FromFile", cfg.VerifyEmailCode.RealmName)
}

func TestEmailConfigToSMTPConfig(t *testing.T) {
	smtp := EmailConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer",
		Password: "secret",
		From:     "noreply@example.com",
		TLS:      true,
	}.ToSMTPConfig()

	assert.Equal(t, "smtp.example.com", smtp.Host)
	assert.Equal(t, 587, smtp.Port)
	assert.Equal(t, "mailer", smtp.Username)
	assert.Equal(t, "secret", smtp.Password)
	assert.Equal(t, "noreply@example.com", smtp.From)
	assert.True(t, smtp.TLS)
}

func TestDatabaseConfig(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, Database: "verify_db", User: "verify", Password: "pwd"}
	assert.Equal(t, "postgres://verify:pwd@db:5433/verify_db?sslmode=disable", d.ToDatabaseURL())

	dbConfig := d.ToDbConfig()
	assert.Equal(t, "db", dbConfig.Host)
	assert.Equal(t, uint16(5433), dbConfig.Port)
}
