package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/Payphone-Digital/admin-panel/internal/handler"
	"github.com/Payphone-Digital/admin-panel/internal/middleware"
	"github.com/Payphone-Digital/admin-panel/internal/repository"
	"github.com/Payphone-Digital/admin-panel/internal/router"
	"github.com/Payphone-Digital/admin-panel/internal/service"
	"github.com/Payphone-Digital/admin-panel/pkg/cache"
	"github.com/Payphone-Digital/admin-panel/pkg/circuit"
	"github.com/Payphone-Digital/admin-panel/pkg/database"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/Payphone-Digital/admin-panel/pkg/redis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	if err := migrate(db); err != nil {
		return err
	}
	if cfg.Seed.AdminEmail != "" && cfg.Seed.AdminPassword != "" {
		if err := seed(ctx, db); err != nil {
			return err
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	// User cache: Redis behind a breaker when enabled, process memory otherwise
	ttl := cfg.Redis.TTL
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}

	var (
		userCache *service.UserCache
		pinger    handler.Pinger
		breaker   *circuit.Breaker
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			logger.GetLogger().Error("Failed to connect to Redis", zap.Error(err))
			return err
		}
		defer redisClient.Close()

		breaker = circuit.NewBreaker("redis", circuit.DefaultConfig(), logger.GetLogger())
		userCache = service.NewRedisUserCache(redisClient, breaker, ttl)
		pinger = redisClient
	} else {
		store := cache.New[[]byte](time.Minute)
		defer store.Stop()
		userCache = service.NewMemoryUserCache(store, ttl)
	}
	logger.GetLogger().Info("User cache initialized",
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Duration("ttl", ttl),
	)

	// Services
	jwtService := service.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	authService := service.NewAuthService(userRepo, jwtService, userCache)
	userService := service.NewUserService(userRepo, userCache)
	postService := service.NewPostService(postRepo, userRepo)

	// Handlers
	r := router.NewRouter(
		handler.NewUserHandler(userService),
		handler.NewAuthHandler(authService),
		handler.NewPostHandler(postService),
		handler.NewHealthHandler(db, pinger, breaker, Version),

		middleware.NewJWTMiddleware(authService),
		cfg,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", cfg.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.GetLogger().Error("Failed to start server",
				zap.Error(err),
				zap.String("port", cfg.App.Port),
			)
			return err
		}
	case <-ctx.Done():
	}

	logger.GetLogger().Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	logger.GetLogger().Info("Server exited")
	return nil
}

