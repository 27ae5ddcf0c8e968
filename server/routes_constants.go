package server

// Route path constants
const (
	RouteHome       = "/"
	RouteOAuthStart = "/oauth"
	RouteCallback   = "/callback"
	RouteLogout     = "/logout"

	RouteRepos      = "/repos"
	RouteEnablement = "/enablement"

	RouteMetrics = "/metrics"
)
