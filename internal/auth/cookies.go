package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie names the SPA client relies on.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieWriter builds the httpOnly auth cookies with the environment's
// security policy: Secure + SameSite=None in production (cross-subdomain
// frontend), SameSite=Lax in development.
type CookieWriter struct {
	production bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCookieWriter creates a cookie writer.
func NewCookieWriter(production bool, accessTTL, refreshTTL time.Duration) *CookieWriter {
	return &CookieWriter{production: production, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Set writes both token cookies on the response.
func (w *CookieWriter) Set(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(w.cookie(AccessTokenCookie, accessToken, w.accessTTL))
	c.SetCookie(w.cookie(RefreshTokenCookie, refreshToken, w.refreshTTL))
}

// Clear expires both token cookies on the response.
func (w *CookieWriter) Clear(c echo.Context) {
	c.SetCookie(w.cookie(AccessTokenCookie, "", -time.Second))
	c.SetCookie(w.cookie(RefreshTokenCookie, "", -time.Second))
}

func (w *CookieWriter) cookie(name, value string, ttl time.Duration) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if w.production {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   w.production,
		SameSite: sameSite,
	}
}
