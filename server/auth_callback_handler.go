package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/repo-enabler/internal/errors"
	"github.com/jrsteele09/repo-enabler/internal/metrics"
	"github.com/rs/zerolog/log"
)

// OAuthStartHandler sends the visitor to GitHub to authorize the app (GET /oauth)
func (s *Server) OAuthStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := generateState()
		authURL, err := s.flow.BuildAuthorizationURL(s.config.GetScopes(), state)
		if err != nil {
			log.Err(err).Msg("Failed to build authorization URL")
			http.Error(w, "OAuth is not configured", http.StatusInternalServerError)
			return
		}
		if err := s.sessions.SaveState(w, r, state); err != nil {
			log.Err(err).Msg("Failed to store oauth state")
			http.Error(w, "Failed to start login", http.StatusInternalServerError)
			return
		}
		redirectTo(w, r, authURL)
	}
}

// OAuthCallbackHandler exchanges the code GitHub redirected back with for an
// access token (GET /callback). Every failure sends the visitor back to the
// start page; the code is single use so there is nothing to retry.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		expectedState := s.sessions.TakeState(w, r)

		if errorParam := query.Get("error"); errorParam != "" {
			log.Warn().Str("error", errorParam).Str("error_description", query.Get("error_description")).Msg("Authorization denied")
			redirectTo(w, r, RouteHome)
			return
		}

		state := query.Get("state")
		if expectedState == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expectedState)) != 1 {
			log.Warn().Err(apperrors.ErrInvalidState).Msg("OAuth callback rejected")
			redirectTo(w, r, RouteHome)
			return
		}

		code := query.Get("code")
		if strings.TrimSpace(code) == "" {
			log.Warn().Err(apperrors.ErrMissingParameter).Msg("OAuth callback without code")
			redirectTo(w, r, RouteHome)
			return
		}

		token, err := s.flow.Exchange(r.Context(), code)
		if err != nil {
			s.metrics.RecordTokenExchange(exchangeOutcome(err))
			log.Err(err).Msg("Token exchange failed")
			redirectTo(w, r, RouteHome)
			return
		}
		s.metrics.RecordTokenExchange(metrics.OutcomeSuccess)

		session := s.sessions.Load(r)
		session.AccessToken = token
		s.sessions.Save(w, r, session)

		redirectTo(w, r, RouteRepos)
	}
}

// LogoutHandler forgets the access token (GET /logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sessions.ClearAccessToken(w, r)
		redirectTo(w, r, RouteHome)
	}
}

func exchangeOutcome(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrNetworkFailure):
		return metrics.OutcomeNetworkFailure
	case apperrors.Is(err, apperrors.ErrInvalidCode):
		return metrics.OutcomeInvalidCode
	default:
		return metrics.OutcomeError
	}
}
