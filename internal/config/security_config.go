package config

import "time"

type SecurityConfig interface {
	GetCookieSecret() []byte
	GetStateMaxAge() time.Duration
}

type Security struct {
	Secret      string        `env:"SECRET"`
	StateMaxAge time.Duration `env:"OAUTH_STATE_MAX_AGE" envDefault:"10m"`
}

var _ SecurityConfig = Security{}

// GetCookieSecret returns the cookie signing secret. Changing it invalidates
// every outstanding session.
func (s Security) GetCookieSecret() []byte {
	return []byte(s.Secret)
}

// GetStateMaxAge bounds how long a user has to come back from the provider
func (s Security) GetStateMaxAge() time.Duration {
	return s.StateMaxAge
}
