package config

import "time"

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetScopes() []string
	GetAuthURL() string
	GetTokenURL() string
	GetAPIURL() string
	GetProviderTimeout() time.Duration
}

// OAuth holds the GitHub OAuth app registration. The endpoint URLs are only
// set for GitHub Enterprise or tests; empty means github.com.
type OAuth struct {
	ClientID        string        `env:"CLIENT_ID"`
	ClientSecret    string        `env:"CLIENT_SECRET"`
	RedirectURI     string        `env:"REDIRECT_URI"`
	Scopes          []string      `env:"SCOPES" envSeparator:"," envDefault:"write:repo_hook,public_repo"`
	AuthURL         string        `env:"GITHUB_AUTH_URL"`
	TokenURL        string        `env:"GITHUB_TOKEN_URL"`
	APIURL          string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetClientSecret() string {
	return o.ClientSecret
}

// GetRedirectURI may be empty, in which case GitHub uses the callback URL
// registered for the OAuth app.
func (o OAuth) GetRedirectURI() string {
	return o.RedirectURI
}

func (o OAuth) GetScopes() []string {
	return o.Scopes
}

func (o OAuth) GetAuthURL() string {
	return o.AuthURL
}

func (o OAuth) GetTokenURL() string {
	return o.TokenURL
}

func (o OAuth) GetAPIURL() string {
	return o.APIURL
}

func (o OAuth) GetProviderTimeout() time.Duration {
	return o.ProviderTimeout
}
