package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"artshare/internal/http-api/middleware"
	"artshare/internal/http-api/models"
	"artshare/internal/http-api/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for the non-file form fields of an upload.
const multipartOverhead = 1 << 20

// Deps is everything the router needs.
type Deps struct {
	Log *slog.Logger

	Auth       service.AuthService
	Gallery    service.GalleryService
	Moderation service.ModerationService
	Engagement service.EngagementService

	// Ping reports database health for /check-conn.
	Ping func(ctx context.Context) error

	Cookie         middleware.CookieOptions
	RateLimiter    *middleware.ClientRateLimiter
	UploadMaxBytes int64
	CORSOrigins    []string

	UploadDir string // served at /uploads when set
	StaticDir string // served at /static when set
}

// NewRouter wires middleware and every route. Templates are loaded separately
// with LoadTemplates so tests can install their own.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		deps.Log.Error("panic while handling request", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(middleware.RequestLogger(deps.Log))
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.Use(middleware.LoadSession(deps.Auth, deps.Cookie, deps.Log))

	if deps.StaticDir != "" {
		router.Static("/static", deps.StaticDir)
	}
	if deps.UploadDir != "" {
		router.Static("/uploads", deps.UploadDir)
	}

	router.GET("/check-conn", func(c *gin.Context) {
		if deps.Ping != nil {
			if err := deps.Ping(c.Request.Context()); err != nil {
				deps.Log.Error("database ping failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "connected"})
	})

	if deps.RateLimiter == nil {
		deps.RateLimiter = middleware.NewClientRateLimiter(20, 5)
	}
	limited := middleware.RateLimit(deps.RateLimiter)
	formLimit := middleware.BodyLimit(64 << 10)

	NewAuthHandler(deps.Auth, deps.Cookie, deps.Log).
		RegisterRoutes(router, formLimit, limited)

	NewGalleryHandler(deps.Gallery, deps.Log).
		RegisterRoutes(router, middleware.RequireRole(models.RoleArtist, models.RoleAdmin))

	NewSubmissionHandler(deps.Moderation, deps.Log).
		RegisterRoutes(router,
			middleware.RequireRole(models.RoleArtist),
			middleware.BodyLimit(deps.UploadMaxBytes+multipartOverhead),
		)

	NewModerationHandler(deps.Moderation, deps.Log).
		RegisterRoutes(router, middleware.RequireRole(models.RoleAdmin), formLimit)

	NewEngagementHandler(deps.Engagement, deps.Log).
		RegisterRoutes(router,
			[]gin.HandlerFunc{middleware.RequireRole(), formLimit},
			[]gin.HandlerFunc{middleware.RequireAuthJSON(), limited},
		)

	router.NoRoute(notFound)
	return router
}
