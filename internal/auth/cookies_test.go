package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func setCookies(t *testing.T, w *CookieWriter) []*http.Cookie {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	w.Set(c, "access-value", "refresh-value")
	return rec.Result().Cookies()
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, ck := range cookies {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestCookieWriter_Development(t *testing.T) {
	w := NewCookieWriter(false, 15*time.Minute, 7*24*time.Hour)
	cookies := setCookies(t, w)

	access := cookieByName(cookies, AccessTokenCookie)
	assert.NotNil(t, access)
	assert.Equal(t, "access-value", access.Value)
	assert.True(t, access.HttpOnly)
	assert.False(t, access.Secure)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
	assert.Equal(t, int(15*time.Minute/time.Second), access.MaxAge)

	refresh := cookieByName(cookies, RefreshTokenCookie)
	assert.NotNil(t, refresh)
	assert.Equal(t, int(7*24*time.Hour/time.Second), refresh.MaxAge)
}

func TestCookieWriter_Production(t *testing.T) {
	w := NewCookieWriter(true, 15*time.Minute, 7*24*time.Hour)
	cookies := setCookies(t, w)

	access := cookieByName(cookies, AccessTokenCookie)
	assert.NotNil(t, access)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteNoneMode, access.SameSite)
}

func TestCookieWriter_Clear(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewCookieWriter(false, 15*time.Minute, time.Hour).Clear(c)

	for _, ck := range rec.Result().Cookies() {
		assert.Empty(t, ck.Value)
		assert.Negative(t, ck.MaxAge)
	}
}
