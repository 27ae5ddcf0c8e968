package repos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/repo-enabler/internal/errors"
	"github.com/jrsteele09/repo-enabler/oauthflow"
	"golang.org/x/oauth2"
)

const (
	DefaultAPIURL = "https://api.github.com"
	userAgent     = "repo-enabler/0.1"
	maxErrorBody  = 4 << 10
)

// Lister fetches the repositories visible to the holder of accessToken.
type Lister interface {
	ListRepositories(ctx context.Context, accessToken string) (Page, error)
}

// GitHubClient lists repositories through the GitHub REST API.
type GitHubClient struct {
	apiURL  string
	timeout time.Duration
}

var _ Lister = (*GitHubClient)(nil)

// NewGitHubClient talks to apiURL (api.github.com when empty). Every call is
// bounded by timeout.
func NewGitHubClient(apiURL string, timeout time.Duration) *GitHubClient {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = oauthflow.DefaultTimeout
	}
	return &GitHubClient{apiURL: strings.TrimRight(apiURL, "/"), timeout: timeout}
}

// ListRepositories returns the first page of the user's repositories in
// GitHub's default order. A 401 means the token was revoked or expired and
// is reported as ErrNotAuthenticated.
func (c *GitHubClient) ListRepositories(ctx context.Context, accessToken string) (Page, error) {
	if accessToken == "" {
		return nil, apperrors.ErrNotAuthenticated
	}

	q := url.Values{"per_page": {strconv.Itoa(PageSize)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/user/repos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list repos request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client(ctx, accessToken).Do(req)
	if err != nil {
		return nil, apperrors.NewAuthError(apperrors.NetworkFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperrors.ErrNotAuthenticated
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, apperrors.NewAuthError(apperrors.NetworkFailure, fmt.Errorf("list repos: status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: list repos status %d: %s", apperrors.ErrProvider, resp.StatusCode, string(body))
	}

	var summaries []Summary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		if oauthflow.IsNetworkError(err) {
			return nil, apperrors.NewAuthError(apperrors.NetworkFailure, err)
		}
		return nil, fmt.Errorf("%w: failed to parse repos response: %v", apperrors.ErrProvider, err)
	}
	return NewPage(summaries), nil
}

func (c *GitHubClient) client(ctx context.Context, accessToken string) *http.Client {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	client.Timeout = c.timeout
	return client
}
