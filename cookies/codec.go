// Package cookies signs cookie values so that tampering is detectable
// without keeping any server-side state.
//
// Each value is carried as an HS256 compact JWS whose claims bind the cookie
// name and the value. Values are signed, not encrypted.
package cookies

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/repo-enabler/internal/errors"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "repo-enabler cookie signing v1"

// Pair is a single cookie name and its value. Depending on direction the
// value is either the plain value or its signed encoding.
type Pair struct {
	Name  string
	Value string
	// MaxAge, when positive, is signed into the value so it stops verifying
	// after that long even if the browser keeps the cookie.
	MaxAge time.Duration
}

type claims struct {
	Name  string `json:"n"`
	Value string `json:"v"`
	jwt.RegisteredClaims
}

// Codec signs and verifies cookie values with a key derived from the
// process secret. It holds no mutable state and is safe for concurrent use.
type Codec struct {
	key []byte
	now func() time.Time
}

type Option func(*Codec)

// WithClock overrides the time source used for expiry claims.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec derives the signing key from secret.
func NewCodec(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: cookie signing secret is empty", apperrors.ErrConfiguration)
	}

	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive cookie signing key: %w", err)
	}

	c := &Codec{key: key, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Sign returns the signed encoding of value for the cookie called name.
func (c *Codec) Sign(name, value string, maxAge time.Duration) (string, error) {
	cl := claims{Name: name, Value: value}
	if maxAge > 0 {
		cl.ExpiresAt = jwt.NewNumericDate(c.now().Add(maxAge))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign cookie %s: %w", name, err)
	}
	return signed, nil
}

// Verify returns the value carried by raw if it was signed by this codec for
// the cookie called name and has not expired. Any failure reports false.
func (c *Codec) Verify(name, raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	var cl claims
	token, err := jwt.ParseWithClaims(raw, &cl, c.verificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil || !token.Valid {
		return "", false
	}
	if cl.Name != name {
		return "", false
	}
	return cl.Value, true
}

func (c *Codec) verificationKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return c.key, nil
}

// Encode signs every pair. Pairs with an empty value are skipped; absence is
// expressed by not sending the cookie at all.
func (c *Codec) Encode(pairs []Pair) ([]Pair, error) {
	signed := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if p.Value == "" {
			continue
		}
		v, err := c.Sign(p.Name, p.Value, p.MaxAge)
		if err != nil {
			return nil, err
		}
		signed = append(signed, Pair{Name: p.Name, Value: v, MaxAge: p.MaxAge})
	}
	return signed, nil
}

// Decode verifies every pair and returns the plain values keyed by name.
// Pairs that fail verification are left out, exactly as if the browser had
// not sent them.
func (c *Codec) Decode(pairs []Pair) map[string]string {
	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if v, ok := c.Verify(p.Name, p.Value); ok {
			values[p.Name] = v
		}
	}
	return values
}
