package server

import (
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/repo-enabler/internal/errors"
	"github.com/jrsteele09/repo-enabler/internal/metrics"
	"github.com/jrsteele09/repo-enabler/repos"
	"github.com/rs/zerolog/log"
)

// ReposPageData is handed to repos.html
type ReposPageData struct {
	AppName     string
	Repos       repos.ViewList
	EnabledRepo string
}

// EnabledPageData is handed to enabled.html
type EnabledPageData struct {
	AppName string
	Repo    string
}

// ReposHandler lists the visitor's repositories with the enabled one marked (GET /repos)
func (s *Server) ReposHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := s.sessionFrom(r)

		page, err := s.lister.ListRepositories(r.Context(), session.AccessToken)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotAuthenticated) {
				s.metrics.RecordRepoListing(metrics.OutcomeNotAuthenticated)
				log.Info().Msg("Access token rejected by provider, logging out")
				s.sessions.ClearAccessToken(w, r)
				redirectTo(w, r, RouteHome)
				return
			}
			s.metrics.RecordRepoListing(listingOutcome(err))
			log.Err(err).Msg("Failed to list repositories")
			redirectTo(w, r, RouteHome)
			return
		}
		s.metrics.RecordRepoListing(metrics.OutcomeSuccess)

		render(w, s.templates.repos, ReposPageData{
			AppName:     s.config.GetAppName(),
			Repos:       repos.Reconcile(page, session.EnabledRepo),
			EnabledRepo: session.EnabledRepo,
		})
	}
}

// EnablementHandler records the submitted repository as the enabled one (POST /enablement)
func (s *Server) EnablementHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			log.Err(err).Msg("Invalid enablement form")
			redirectTo(w, r, RouteRepos)
			return
		}

		fullName := strings.TrimSpace(r.PostFormValue("repo"))
		if fullName == "" {
			redirectTo(w, r, RouteRepos)
			return
		}

		session := repos.SetEnabled(s.sessionFrom(r), fullName)
		s.sessions.Save(w, r, session)
		s.metrics.RecordEnablement()
		log.Info().Str("repo", fullName).Msg("Repository enabled")

		render(w, s.templates.enabled, EnabledPageData{
			AppName: s.config.GetAppName(),
			Repo:    fullName,
		})
	}
}

func listingOutcome(err error) string {
	if apperrors.Is(err, apperrors.ErrNetworkFailure) {
		return metrics.OutcomeNetworkFailure
	}
	return metrics.OutcomeError
}
