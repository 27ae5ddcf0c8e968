package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	apperrors "github.com/jrsteele09/repo-enabler/internal/errors"
)

type Config interface {
	EnvConfig
	OAuthConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

// mainConfig is populated once at startup and only read afterwards, so it is
// safe to share between concurrently handled requests.
type mainConfig struct {
	EnvVars
	OAuth
	Security
}

// New reads the configuration from the process environment.
func New() (Config, error) {
	return parse(env.Options{})
}

// NewFromMap reads the configuration from vars instead of the process environment.
func NewFromMap(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var c mainConfig
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c mainConfig) validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: CLIENT_ID must be specified", apperrors.ErrConfiguration)
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("%w: CLIENT_SECRET must be specified", apperrors.ErrConfiguration)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: SECRET must be specified to sign cookies", apperrors.ErrConfiguration)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("%w: PROVIDER_TIMEOUT must be positive", apperrors.ErrConfiguration)
	}
	return nil
}
