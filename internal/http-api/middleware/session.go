package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"artshare/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "artshare_session"
	principalKey      = "principal"
)

// CookieOptions control how the session cookie is written.
type CookieOptions struct {
	Secure bool
	MaxAge int // seconds
}

// SetSessionCookie writes the signed session token. The cookie is HttpOnly
// and SameSite=Lax.
func SetSessionCookie(c *gin.Context, token string, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, opts.MaxAge, "/", "", opts.Secure, true)
}

func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", opts.Secure, true)
}

// LoadSession resolves the session cookie, when present, into the request's
// principal. It never blocks a request; pages decide what anonymous callers see.
func LoadSession(authService service.AuthService, opts CookieOptions, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		principal, err := authService.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(principalKey, principal)
		case errors.Is(err, service.ErrAuthentication):
			// stale or forged cookie, drop it
			ClearSessionCookie(c, opts)
		default:
			log.Error("failed to resolve session", "path", c.Request.URL.Path, "error", err)
		}

		c.Next()
	}
}

// CurrentPrincipal returns the caller set by LoadSession, or nil when anonymous.
func CurrentPrincipal(c *gin.Context) *service.Principal {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, _ := v.(*service.Principal)
	return principal
}
