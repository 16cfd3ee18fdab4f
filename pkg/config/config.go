package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
)

// Config is the full configuration of the verifyemailcode service
type Config struct {
	AppConfig       app.AppConfig
	VerifyEmailCode VerifyEmailCodeConfig
	Email           EmailConfig
	Database        DatabaseConfig
	Redis           RedisConfig
	ActionToken     ActionTokenConfig
	Persistence     PersistenceConfig
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	slog.Info("Configuration loaded",
		"code_format", cfg.VerifyEmailCode.Format,
		"user_store", cfg.Persistence.Users,
		"session_store", cfg.Persistence.Sessions)
	return cfg, nil
}

// Validate checks every section the selected stores need.
func (c Config) Validate() error {
	validators := []Validator{
		c.VerifyEmailCode.Validate,
		c.Email.Validate,
		c.ActionToken.Validate,
		c.Persistence.Validate,
	}
	if c.Persistence.Users == StorePostgres {
		validators = append(validators, c.Database.Validate)
	}
	if c.Persistence.Sessions == StoreRedis {
		validators = append(validators, c.Redis.Validate)
	}
	return Validate(validators...)
}
