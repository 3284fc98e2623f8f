package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie issued to the browser.
const CookieName = "aidtrack_session"

var ErrBadCookie = errors.New("invalid session cookie")

// Codec signs and verifies the session cookie. The cookie carries only the
// session ID as an HS256 JWT; a forged or tampered cookie fails verification
// before any store lookup happens.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec from the shared secret and the session lifetime.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Mint signs a cookie value for the given session ID.
func (c *Codec) Mint(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Parse verifies a cookie value and extracts the session ID.
func (c *Codec) Parse(value string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", ErrBadCookie
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", ErrBadCookie
	}
	return sid, nil
}

// SetCookie issues the session cookie on the response.
func (c *Codec) SetCookie(w http.ResponseWriter, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(c.ttl),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie from the client.
func (c *Codec) ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
