package server

import "github.com/jrsteele09/repo-enabler/internal/metrics"

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHome+"{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// OAuth authorization-code flow
	s.RegisterRouteHandler("GET "+RouteOAuthStart, ChainMiddleware(s.OAuthStartHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Require an access token
	s.RegisterRouteHandler("GET "+RouteRepos, ChainMiddleware(s.ReposHandler(), s.HTMLMiddleWare(s.RequireAccessToken())...))
	s.RegisterRouteHandler("POST "+RouteEnablement, ChainMiddleware(s.EnablementHandler(), s.HTMLMiddleWare(s.RequireAccessToken())...))

	s.RegisterRouteHandler("GET "+RouteMetrics, metrics.Handler(s.registry))
}
