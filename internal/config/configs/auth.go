package configs

import "time"

// Auth configures session tokens for the admin console.
type Auth struct {
	// Secret signs the HS256 session tokens. Must be set in production.
	Secret string `env:"SECRET" envDefault:"dev-secret-change-me"`
	// TokenTTL is how long an issued session stays valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}
