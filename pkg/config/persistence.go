package config

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// PersistenceConfig selects the backing store for users and sessions
type PersistenceConfig struct {
	Users    string `env:"USER_STORE" env-default:"memory"`
	Sessions string `env:"SESSION_STORE" env-default:"memory"`
}

func (p PersistenceConfig) Validate() ValidationErrors {
	return CollectErrors(
		RequireOneOf("USER_STORE", p.Users, []string{StoreMemory, StorePostgres}),
		RequireOneOf("SESSION_STORE", p.Sessions, []string{StoreMemory, StoreRedis}),
	)
}
