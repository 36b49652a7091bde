package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Randle9000/phresh-api/internal/infra/config"
	"github.com/Randle9000/phresh-api/internal/infra/database"
	"github.com/Randle9000/phresh-api/internal/infra/logger"
	"github.com/Randle9000/phresh-api/internal/infra/security"
	postgresrepo "github.com/Randle9000/phresh-api/internal/repository/postgres"
	"github.com/Randle9000/phresh-api/internal/transport/http/middleware"
	"github.com/Randle9000/phresh-api/internal/transport/http/routes"
	"github.com/Randle9000/phresh-api/internal/usecase"
)

// Application bundles everything the HTTP API needs to run.
type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
}

// New wires configuration, storage, services, and routes into a runnable application.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	hasher := security.NewHasher(security.DefaultArgon2Params())
	codec := security.NewTokenCodec()

	authService := usecase.NewAuthService(cfg, hasher, codec, repos.Users)
	userService := usecase.NewUserService(repos.Users, repos.Profiles, authService)
	profileService := usecase.NewProfileService(repos.Profiles)
	cleaningService := usecase.NewCleaningService(repos.Cleanings)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Metrics:  metrics,
		Database: pool,
		Services: routes.ServiceSet{
			Auth:      authService,
			Users:     userService,
			Profiles:  profileService,
			Cleanings: cleaningService,
		},
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting phresh API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
