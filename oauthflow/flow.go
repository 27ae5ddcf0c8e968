// Package oauthflow runs the client side of the OAuth2 authorization-code
// flow against GitHub.
package oauthflow

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/repo-enabler/internal/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const DefaultTimeout = 10 * time.Second

// Config is the OAuth app registration. AuthURL and TokenURL default to
// github.com.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // optional
	AuthURL      string
	TokenURL     string
	Timeout      time.Duration
}

// Flow builds authorization URLs and exchanges codes for tokens. It is
// immutable after New and safe for concurrent use.
type Flow struct {
	oauth  oauth2.Config
	client *http.Client
}

func New(cfg Config) (*Flow, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: oauth client id is not set", apperrors.ErrConfiguration)
	}

	endpoint := github.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	// Credentials go in the body so the exchange is exactly one request.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Flow{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
		},
		client: &http.Client{Timeout: timeout},
	}, nil
}

// BuildAuthorizationURL returns the provider URL the user is sent to. Scopes
// are joined with a single space.
func (f *Flow) BuildAuthorizationURL(scopes []string, state string) (string, error) {
	if f == nil || f.oauth.ClientID == "" {
		return "", fmt.Errorf("%w: oauth client id is not set", apperrors.ErrConfiguration)
	}
	var opts []oauth2.AuthCodeOption
	if len(scopes) > 0 {
		opts = append(opts, oauth2.SetAuthURLParam("scope", strings.Join(scopes, " ")))
	}
	return f.oauth.AuthCodeURL(state, opts...), nil
}

// Exchange trades an authorization code for an access token. Redirect
// carried codes can pick up stray whitespace, so the code is trimmed first.
// Failures are never retried: codes are single use.
func (f *Flow) Exchange(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", apperrors.NewAuthError(apperrors.InvalidCode, apperrors.ErrMissingParameter)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.client)
	token, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		return "", classify(err)
	}
	return token.AccessToken, nil
}

func classify(err error) *apperrors.AuthError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= http.StatusInternalServerError {
			return apperrors.NewAuthError(apperrors.NetworkFailure, err)
		}
		return apperrors.NewAuthError(apperrors.InvalidCode, err)
	}
	if IsNetworkError(err) {
		return apperrors.NewAuthError(apperrors.NetworkFailure, err)
	}
	// e.g. a 200 response without an access_token
	return apperrors.NewAuthError(apperrors.InvalidCode, err)
}

// IsNetworkError reports whether err came from the transport rather than
// from the provider answering.
func IsNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
