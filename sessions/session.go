package sessions

// Cookie names. The enabled repository travels in "datastore", the name the
// first version of the app used.
const (
	AccessTokenCookie = "access_token"
	EnabledRepoCookie = "datastore"
	StateCookie       = "oauth_state"
)

// Session is everything the app knows about a visitor. It lives only in the
// visitor's signed cookies; an empty field means the cookie was absent or
// failed verification.
type Session struct {
	AccessToken string // GitHub bearer token, set once by the OAuth callback
	EnabledRepo string // full name (owner/name) of the single enabled repository
}

// Authenticated reports whether the session carries an access token.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}
