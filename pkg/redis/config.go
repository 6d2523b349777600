package redis

import "time"

// Config describes the Redis backend for shared authorization state.
// An empty ConnectionURL disables the backend.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                               // ConnectionURL in the form "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`   // RetryInterval is the delay between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"` // ConnectTimeout bounds the whole connection phase.
	KeyTTL         time.Duration `env:"REDIS_KEY_TTL" envDefault:"1h"`          // KeyTTL expires stashed authorization state. Zero keeps keys forever.
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
