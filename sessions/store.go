package sessions

import (
	"net/http"
	"time"

	"github.com/jrsteele09/repo-enabler/cookies"
	apperrors "github.com/jrsteele09/repo-enabler/internal/errors"
	"github.com/rs/zerolog/log"
)

// Store maps request cookies to a Session and back.
type Store struct {
	codec       *cookies.Codec
	stateMaxAge time.Duration
}

// NewStore returns a Store signing with codec. stateMaxAge bounds the
// lifetime of the OAuth state cookie.
func NewStore(codec *cookies.Codec, stateMaxAge time.Duration) *Store {
	return &Store{codec: codec, stateMaxAge: stateMaxAge}
}

// Decode builds a Session from raw cookies. It never fails: anything that
// does not verify is treated as absent.
func (st *Store) Decode(raw []*http.Cookie) Session {
	pairs := make([]cookies.Pair, 0, len(raw))
	for _, c := range raw {
		if c.Name == AccessTokenCookie || c.Name == EnabledRepoCookie {
			pairs = append(pairs, cookies.Pair{Name: c.Name, Value: c.Value})
		}
	}
	values := st.codec.Decode(pairs)
	for _, p := range pairs {
		if _, ok := values[p.Name]; !ok {
			log.Debug().Err(apperrors.ErrSessionDecode).Str("cookie", p.Name).Msg("Ignoring session cookie")
		}
	}
	return Session{
		AccessToken: values[AccessTokenCookie],
		EnabledRepo: values[EnabledRepoCookie],
	}
}

// Encode returns the signed cookies for s. Empty fields produce no cookie so
// that whatever the browser already holds for them is left alone.
func (st *Store) Encode(s Session, secure bool) ([]*http.Cookie, error) {
	signed, err := st.codec.Encode([]cookies.Pair{
		{Name: AccessTokenCookie, Value: s.AccessToken},
		{Name: EnabledRepoCookie, Value: s.EnabledRepo},
	})
	if err != nil {
		return nil, err
	}

	out := make([]*http.Cookie, 0, len(signed))
	for _, p := range signed {
		out = append(out, newCookie(p.Name, p.Value, 0, secure))
	}
	return out, nil
}

// Load returns the session carried by r.
func (st *Store) Load(r *http.Request) Session {
	return st.Decode(r.Cookies())
}

// Save writes s to w. Call it once per response that changes the session.
func (st *Store) Save(w http.ResponseWriter, r *http.Request, s Session) {
	out, err := st.Encode(s, isSecure(r))
	if err != nil {
		log.Err(err).Msg("Failed to encode session cookies")
		return
	}
	for _, c := range out {
		http.SetCookie(w, c)
	}
}

// ClearAccessToken expires the access token cookie, returning the visitor
// to anonymous. The enabled repository is kept for their next login.
func (st *Store) ClearAccessToken(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, newCookie(AccessTokenCookie, "", -1, isSecure(r)))
}

// SaveState stores the OAuth state for the authorization attempt in flight.
func (st *Store) SaveState(w http.ResponseWriter, r *http.Request, state string) error {
	signed, err := st.codec.Sign(StateCookie, state, st.stateMaxAge)
	if err != nil {
		return err
	}
	http.SetCookie(w, newCookie(StateCookie, signed, int(st.stateMaxAge.Seconds()), isSecure(r)))
	return nil
}

// TakeState returns the stored OAuth state, or "" if there is none or it
// does not verify, and expires the cookie. A state is only good for one
// callback.
func (st *Store) TakeState(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(StateCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, newCookie(StateCookie, "", -1, isSecure(r)))

	state, ok := st.codec.Verify(StateCookie, c.Value)
	if !ok {
		return ""
	}
	return state
}

func newCookie(name, value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
