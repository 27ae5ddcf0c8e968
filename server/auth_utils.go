package server

import (
	"net/http"

	"github.com/google/uuid"
)

// generateState returns an unguessable value for the OAuth state parameter
func generateState() string {
	return uuid.NewString()
}

// redirectTo sends the browser to path. Auth failures always end here
// rather than on an error page.
func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}
