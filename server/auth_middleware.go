package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/repo-enabler/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the session decoded from the request cookies
const ContextKeySession ContextKey = "session"

// RequireAccessToken redirects visitors without a verified access token to
// the home page. Authenticated requests get their session in the context.
func (s *Server) RequireAccessToken() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session := s.sessions.Load(r)
			if !session.Authenticated() {
				redirectTo(w, r, RouteHome)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next(w, r.WithContext(ctx))
		}
	}
}

// sessionFrom returns the session stored by RequireAccessToken, falling
// back to decoding the cookies.
func (s *Server) sessionFrom(r *http.Request) sessions.Session {
	if session, ok := r.Context().Value(ContextKeySession).(sessions.Session); ok {
		return session
	}
	return s.sessions.Load(r)
}
