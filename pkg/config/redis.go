package config

import "github.com/redis/go-redis/v9"

// RedisConfig holds the connection used for authentication session notes
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" env-default:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" env-default:"authsession:"`
}

func (r RedisConfig) Options() *redis.Options {
	return &redis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	}
}

func (r RedisConfig) Validate() ValidationErrors {
	return CollectErrors(
		RequireNonEmpty("REDIS_ADDR", r.Addr),
		RequireInRange("REDIS_DB", r.DB, 0, 15),
	)
}
