// AngelaMos | 2026
// cookie.go

package auth

import (
	"net/http"
	"time"

	"github.com/carterperez-dev/staffdesk/internal/config"
)

// SessionCookies writes and clears the HTTP-only, secure, cross-site
// session cookie that carries the signed token.
type SessionCookies struct {
	name   string
	expiry time.Duration
}

func NewSessionCookies(cfg config.SessionConfig) *SessionCookies {
	return &SessionCookies{
		name:   cfg.CookieName,
		expiry: cfg.Expiry,
	}
}

func (c *SessionCookies) Name() string {
	return c.name
}

func (c *SessionCookies) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(c.expiry),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (c *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
