package repos_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/repo-enabler/internal/errors"
	"github.com/jrsteele09/repo-enabler/repos"
	"github.com/stretchr/testify/require"
)

func reposJSON(n int) string {
	body := "["
	for i := 1; i <= n; i++ {
		if i > 1 {
			body += ","
		}
		body += fmt.Sprintf(`{"id":%d,"full_name":"octocat/repo-%d","private":false}`, i, i)
	}
	return body + "]"
}

func TestGitHubClient_ListRepositories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/repos", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("per_page"))
		require.Equal(t, "Bearer tok_1", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reposJSON(7)))
	}))
	defer srv.Close()

	page, err := repos.NewGitHubClient(srv.URL+"/", time.Second).ListRepositories(context.Background(), "tok_1")
	require.NoError(t, err)
	require.Len(t, page, repos.PageSize)
	require.Equal(t, "octocat/repo-1", page[0].FullName)
	require.Equal(t, "octocat/repo-5", page[4].FullName)
}

func TestGitHubClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "revoked token", status: http.StatusUnauthorized, body: `{"message":"Bad credentials"}`, wantErr: apperrors.ErrNotAuthenticated},
		{name: "server error", status: http.StatusServiceUnavailable, wantErr: apperrors.ErrNetworkFailure},
		{name: "forbidden", status: http.StatusForbidden, body: `{"message":"rate limited"}`, wantErr: apperrors.ErrProvider},
		{name: "bad json", status: http.StatusOK, body: `{"not":"a list"}`, wantErr: apperrors.ErrProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := repos.NewGitHubClient(srv.URL, time.Second).ListRepositories(context.Background(), "tok_1")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGitHubClient_NoToken(t *testing.T) {
	_, err := repos.NewGitHubClient("http://127.0.0.1:1", time.Second).ListRepositories(context.Background(), "")
	require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestGitHubClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	apiURL := srv.URL
	srv.Close()

	_, err := repos.NewGitHubClient(apiURL, time.Second).ListRepositories(context.Background(), "tok_1")
	require.ErrorIs(t, err, apperrors.ErrNetworkFailure)
}
