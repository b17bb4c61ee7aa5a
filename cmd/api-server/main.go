package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artshare/database"
	"artshare/internal/config"
	"artshare/internal/http-api/handler"
	"artshare/internal/http-api/middleware"
	"artshare/internal/http-api/models"
	"artshare/internal/http-api/repository"
	"artshare/internal/http-api/service"
	"artshare/internal/http-api/session"
	"artshare/internal/logging"
	"artshare/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	schema := models.All()
	if cfg.SessionBackend == config.SessionBackendDatabase {
		schema = append(schema, &session.Record{})
	}
	if err := database.Migrate(db, logger, schema...); err != nil {
		return err
	}

	if cfg.HasBootstrapAdmin() {
		created, err := database.EnsureAdmin(ctx, db, database.AdminSpec{
			Username: cfg.AdminUsername,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		})
		if err != nil {
			return err
		}
		logger.Info("bootstrap admin ensured", "username", cfg.AdminUsername, "created", created)
	}

	// Sessions
	sessionStore, closeSessions, err := openSessionStore(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	defer closeSessions()
	sessions := session.NewManager(sessionStore, session.NewCodec(cfg.SessionSecret), cfg.SessionTTL)

	// Uploads
	images, err := storage.NewLocalStore(cfg.UploadDir, cfg.UploadMaxBytes)
	if err != nil {
		return err
	}
	logger.Info("upload directory ready", "dir", images.Dir(), "max_bytes", cfg.UploadMaxBytes)

	// Services
	store := repository.NewStore(db)
	router := handler.NewRouter(handler.Deps{
		Log:        logger,
		Auth:       service.NewAuthService(store.Accounts, sessions, logger),
		Gallery:    service.NewGalleryService(store, service.DefaultPageSize, cfg.FeaturedCount),
		Moderation: service.NewModerationService(store, images, logger),
		Engagement: service.NewEngagementService(store),
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		Cookie: middleware.CookieOptions{
			Secure: cfg.CookieSecure,
			MaxAge: int(sessions.TTL() / time.Second),
		},
		RateLimiter:    middleware.NewClientRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst),
		UploadMaxBytes: cfg.UploadMaxBytes,
		CORSOrigins:    cfg.CORSOrigins,
		UploadDir:      images.Dir(),
		StaticDir:      cfg.StaticDir,
	})
	handler.LoadTemplates(router, cfg.TemplateDir)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server_stopped_gracefully")
	return nil
}

// openSessionStore picks the configured backend and returns a close func for it.
func openSessionStore(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *slog.Logger) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := session.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("session backend ready", "backend", "redis")
		return session.NewRedisStore(client), func() { client.Close() }, nil

	default:
		store := session.NewDBStore(db)
		purged, err := store.PurgeExpired(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("purge expired sessions: %w", err)
		}
		logger.Info("session backend ready", "backend", "database", "expired_purged", purged)
		return store, func() {}, nil
	}
}
