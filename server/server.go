package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/repo-enabler/cookies"
	"github.com/jrsteele09/repo-enabler/internal/config"
	apperrors "github.com/jrsteele09/repo-enabler/internal/errors"
	"github.com/jrsteele09/repo-enabler/internal/metrics"
	"github.com/jrsteele09/repo-enabler/oauthflow"
	"github.com/jrsteele09/repo-enabler/repos"
	"github.com/jrsteele09/repo-enabler/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	flow      *oauthflow.Flow
	sessions  *sessions.Store
	lister    repos.Lister
	metrics   *metrics.Collector
	registry  *prometheus.Registry
	templates *pageTemplates
}

type Option func(*Server)

// WithLister replaces the GitHub repository client.
func WithLister(l repos.Lister) Option {
	return func(s *Server) {
		s.lister = l
	}
}

// New wires the server from configuration that was loaded once at startup.
// Nothing here reads the environment again.
func New(c config.Config, opts ...Option) (*Server, error) {
	codec, err := cookies.NewCodec(c.GetCookieSecret())
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Server New] failed to create cookie codec")
	}

	flow, err := oauthflow.New(oauthflow.Config{
		ClientID:     c.GetClientID(),
		ClientSecret: c.GetClientSecret(),
		RedirectURL:  c.GetRedirectURI(),
		AuthURL:      c.GetAuthURL(),
		TokenURL:     c.GetTokenURL(),
		Timeout:      c.GetProviderTimeout(),
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Server New] failed to create oauth flow")
	}

	templates, err := parsePageTemplates()
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Server New] failed to parse templates")
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		env:       c.GetEnv(),
		mux:       http.NewServeMux(),
		config:    c,
		flow:      flow,
		sessions:  sessions.NewStore(codec, c.GetStateMaxAge()),
		lister:    repos.NewGitHubClient(c.GetAPIURL(), c.GetProviderTimeout()),
		metrics:   metrics.NewCollector(registry),
		registry:  registry,
		templates: templates,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
