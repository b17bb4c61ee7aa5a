package middleware

import (
	"net/http"

	"artshare/internal/http-api/models"
	"artshare/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// RequireRole gates page routes. Anonymous callers are sent to the login
// page, callers with the wrong role to the landing page. With no roles any
// logged-in caller passes.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		if err := service.Authorize(principal, roles...); err != nil {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthJSON is RequireRole for JSON endpoints.
func RequireAuthJSON(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "login required"})
			c.Abort()
			return
		}
		if err := service.Authorize(principal, roles...); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "not permitted"})
			c.Abort()
			return
		}
		c.Next()
	}
}
