package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"flexboard/docs"
	"flexboard/internal/config"
	"flexboard/internal/database"
	"flexboard/internal/handler"
	"flexboard/internal/middleware"
	"flexboard/internal/model"
	"flexboard/internal/repository"
	"flexboard/internal/router"
	"flexboard/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DBAutoMigrate {
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	slog.Info("database ready")

	passwords := service.NewPasswordHasher(cfg.BcryptCost)
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	authService := service.NewAuthService(userRepo, passwords, tokens, cfg.AccessTokenTTL)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	userService := service.NewUserService(userRepo, passwords)
	auditService := service.NewAuditService(auditRepo)
	jobService := service.NewJobService(jobRepo, auditService)

	docsHandler, err := handler.NewDocsHandler(docs.OpenAPI, cfg.ProjectTitle)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load API docs: %w", err)
	}

	appRouter := router.New(cfg, authMiddleware, db, router.Handlers{
		Auth:   handler.NewAuthHandler(authService, cfg.CookieSecure),
		User:   handler.NewUserHandler(userService),
		Job:    handler.NewJobHandler(jobService),
		Audit:  handler.NewAuditHandler(auditService),
		Docs:   docsHandler,
		Health: handler.NewHealthHandler(db, cfg.ProjectVersion),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			db.Close,
		},
	}, nil
}

// Run serves until ctx is canceled or SIGINT/SIGTERM arrives, then drains
// in-flight requests before closing the pool.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			a.cleanup()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.cleanup()
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func (a *App) cleanup() {
	for _, fn := range a.cleanupFuncs {
		fn()
	}
}

// CreateSuperuser registers an active superuser directly against the database.
func CreateSuperuser(ctx context.Context, cfg *config.Config, req model.RegisterRequest) (model.UserView, error) {
	db, err := database.New(ctx, cfg.DatabaseURL, 1, 0)
	if err != nil {
		return model.UserView{}, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	users := service.NewUserService(repository.NewUserRepository(db.Pool), service.NewPasswordHasher(cfg.BcryptCost))
	return users.Register(ctx, req, true)
}
