package server

import (
	"net/http"
)

// IndexPageData is handed to index.html
type IndexPageData struct {
	AppName       string
	Authenticated bool
	EnabledRepo   string
}

// IndexHandler renders the home page
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := s.sessions.Load(r)
		render(w, s.templates.index, IndexPageData{
			AppName:       s.config.GetAppName(),
			Authenticated: session.Authenticated(),
			EnabledRepo:   session.EnabledRepo,
		})
	}
}
