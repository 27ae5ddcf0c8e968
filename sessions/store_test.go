package sessions_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/repo-enabler/cookies"
	"github.com/jrsteele09/repo-enabler/sessions"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, secret string) *sessions.Store {
	t.Helper()
	codec, err := cookies.NewCodec([]byte(secret))
	require.NoError(t, err)
	return sessions.NewStore(codec, time.Minute)
}

// followUp returns a request carrying the cookies rec set, the way a browser
// would on its next request.
func followUp(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return r
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestStore_LoadWithoutCookies(t *testing.T) {
	st := newStore(t, "secret")

	s := st.Load(httptest.NewRequest(http.MethodGet, "/repos", nil))
	require.Equal(t, sessions.Session{}, s)
	require.False(t, s.Authenticated())
}

func TestStore_RoundTrip(t *testing.T) {
	st := newStore(t, "secret")

	for _, s := range []sessions.Session{
		{},
		{AccessToken: "tok_1"},
		{EnabledRepo: "octocat/Hello-World"},
		{AccessToken: "tok_1", EnabledRepo: "octocat/Hello-World"},
	} {
		out, err := st.Encode(s, false)
		require.NoError(t, err)
		require.Equal(t, s, st.Decode(out))
	}
}

func TestStore_SaveSetsCookieAttributes(t *testing.T) {
	st := newStore(t, "secret")
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/callback", nil)

	st.Save(rec, r, sessions.Session{AccessToken: "tok_1"})

	c := cookieNamed(rec, sessions.AccessTokenCookie)
	require.NotNil(t, c)
	require.NotEqual(t, "tok_1", c.Value)
	require.Equal(t, "/", c.Path)
	require.True(t, c.HttpOnly)
	require.True(t, c.Secure)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	require.Nil(t, cookieNamed(rec, sessions.EnabledRepoCookie))
}

func TestStore_FieldIndependence(t *testing.T) {
	st := newStore(t, "secret")

	login := httptest.NewRecorder()
	st.Save(login, httptest.NewRequest(http.MethodGet, "/callback", nil), sessions.Session{AccessToken: "tok_1"})

	r := followUp(login)
	s := st.Load(r)
	s.EnabledRepo = "octocat/Hello-World"

	enable := httptest.NewRecorder()
	st.Save(enable, r, s)

	token := cookieNamed(enable, sessions.AccessTokenCookie)
	require.NotNil(t, token)
	got := st.Decode([]*http.Cookie{token})
	require.Equal(t, "tok_1", got.AccessToken)

	require.Equal(t, sessions.Session{AccessToken: "tok_1", EnabledRepo: "octocat/Hello-World"}, st.Load(followUp(enable)))
}

func TestStore_TamperedCookieIsAbsent(t *testing.T) {
	st := newStore(t, "secret")
	out, err := st.Encode(sessions.Session{AccessToken: "tok_1", EnabledRepo: "octocat/Hello-World"}, false)
	require.NoError(t, err)

	tampered := []byte(out[0].Value)
	tampered[len(tampered)/2] ^= 0x01
	out[0].Value = string(tampered)

	require.Equal(t, sessions.Session{EnabledRepo: "octocat/Hello-World"}, st.Decode(out))
}

func TestStore_PlainCookiesAreIgnored(t *testing.T) {
	st := newStore(t, "secret")
	r := httptest.NewRequest(http.MethodGet, "/repos", nil)
	r.AddCookie(&http.Cookie{Name: sessions.AccessTokenCookie, Value: "tok_forged"})
	r.AddCookie(&http.Cookie{Name: sessions.EnabledRepoCookie, Value: "evil/repo"})

	require.Equal(t, sessions.Session{}, st.Load(r))
}

func TestStore_RotatedSecret(t *testing.T) {
	rec := httptest.NewRecorder()
	newStore(t, "old").Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), sessions.Session{AccessToken: "tok_1"})

	require.False(t, newStore(t, "new").Load(followUp(rec)).Authenticated())
}

func TestStore_ClearAccessToken(t *testing.T) {
	st := newStore(t, "secret")
	rec := httptest.NewRecorder()

	st.ClearAccessToken(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	c := cookieNamed(rec, sessions.AccessTokenCookie)
	require.NotNil(t, c)
	require.Empty(t, c.Value)
	require.Less(t, c.MaxAge, 0)
	require.Nil(t, cookieNamed(rec, sessions.EnabledRepoCookie))
}

func TestStore_State(t *testing.T) {
	st := newStore(t, "secret")

	rec := httptest.NewRecorder()
	require.NoError(t, st.SaveState(rec, httptest.NewRequest(http.MethodGet, "/oauth", nil), "state-1"))
	require.Equal(t, 60, cookieNamed(rec, sessions.StateCookie).MaxAge)

	callback := httptest.NewRecorder()
	require.Equal(t, "state-1", st.TakeState(callback, followUp(rec)))

	expired := cookieNamed(callback, sessions.StateCookie)
	require.NotNil(t, expired)
	require.Less(t, expired.MaxAge, 0)

	t.Run("missing", func(t *testing.T) {
		require.Empty(t, st.TakeState(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback", nil)))
	})

	t.Run("session cookie is not a state", func(t *testing.T) {
		out, err := st.Encode(sessions.Session{AccessToken: "tok_1"}, false)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/callback", nil)
		r.AddCookie(&http.Cookie{Name: sessions.StateCookie, Value: out[0].Value})
		require.Empty(t, st.TakeState(httptest.NewRecorder(), r))
	})
}
