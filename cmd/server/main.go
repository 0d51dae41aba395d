package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wardrobe.backend/internal/config"
	"wardrobe.backend/internal/domain/repositories"
	"wardrobe.backend/internal/infrastructure/backup"
	"wardrobe.backend/internal/infrastructure/jobs"
	"wardrobe.backend/internal/infrastructure/notification"
	"wardrobe.backend/internal/interfaces/http/handlers"
	"wardrobe.backend/internal/interfaces/http/middleware"
	"wardrobe.backend/internal/usecases"
	"wardrobe.backend/pkg/jwt"
	"wardrobe.backend/pkg/logger"
	"wardrobe.backend/pkg/metrics"
	"wardrobe.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv   = godotenv.Load
	loadCfg      = config.Load
	initLog      = logger.Init
	connectRedis = redis.Connect
	openStore    = newStore
	newS3Sink    = backup.NewS3Sink
	runServer    = func(ctx context.Context, r *gin.Engine, port string) error {
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := connectRedis(cfg.Redis.URL, cfg.Redis.Password)
	if err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Redis initialized")

	sessionStore, err := redis.NewSessionStore(redisClient, cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	baseStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Storage.Driver, err)
	}
	defer baseStore.Close()
	logger.Info(ctx, "Store ready", zap.String("driver", cfg.Storage.Driver))

	m := metrics.New()

	sinks := []backup.Sink{backup.NewFileSink(cfg.Snapshot.Path)}
	if cfg.Snapshot.S3.Enabled() {
		s3Sink, err := newS3Sink(ctx, cfg.Snapshot.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize snapshot upload: %w", err)
		}
		sinks = append(sinks, s3Sink)
	}
	snapshots := backup.NewWriter(baseStore, m, sinks...)
	var store repositories.Store = backup.NewStore(baseStore, snapshots)

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	notifier := notification.NewFromConfig(cfg.Mail, cfg.SMS)
	devFallback := cfg.Server.IsDevelopment() && cfg.Registration.DevFallback

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(store, sessionStore, redis.NewCodeStore(redisClient, "password_reset"),
		jwtService, notifier, usecases.AuthOptions{
			SessionTTL:  cfg.Security.SessionTTL,
			ResetTTL:    cfg.Registration.ResetCodeTTL,
			DevFallback: devFallback,
		})
	registrationUsecase := usecases.NewRegistrationUsecase(store, notifier, m, cfg.Registration.CodeTTL, devFallback)
	productUsecase := usecases.NewProductUsecase(store)
	inventoryUsecase := usecases.NewInventoryUsecase(store, m, cfg.Inventory.DefaultMinStock)
	profileUsecase := usecases.NewProfileUsecase(store)
	adminUsecase := usecases.NewAdminUsecase(store)

	if cfg.Storage.Seed {
		if _, err := usecases.SeedCatalog(ctx, productUsecase); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}
	if cfg.Storage.AdminEmail != "" && cfg.Storage.AdminPasswordHash != "" {
		if _, err := usecases.BootstrapAdmin(ctx, store, cfg.Storage.AdminEmail, cfg.Storage.AdminPasswordHash); err != nil {
			return fmt.Errorf("failed to bootstrap admin: %w", err)
		}
	}

	// Start background jobs
	snapshotJob := jobs.NewSnapshotJob(snapshots, cfg.Snapshot.Interval)
	cleanupJob := jobs.NewPendingRegistrationCleanupJob(store.PendingRegistrations(), cfg.Registration.CleanupInterval)
	if cfg.Snapshot.Interval > 0 {
		go snapshotJob.Start(ctx)
	}
	if cfg.Registration.CleanupInterval > 0 {
		go cleanupJob.Start(ctx)
	}
	defer snapshotJob.Stop()
	defer cleanupJob.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(m))

	applyCORSMiddleware(r, cfg.CORS.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r, m)
	registerAPIRoutes(r, routeDeps{
		authHandler:      handlers.NewAuthHandler(authUsecase, registrationUsecase, cfg.Security.CookieSecure),
		productHandler:   handlers.NewProductHandler(productUsecase),
		inventoryHandler: handlers.NewInventoryHandler(inventoryUsecase),
		profileHandler:   handlers.NewProfileHandler(profileUsecase, authUsecase),
		adminHandler:     handlers.NewAdminHandler(adminUsecase),
		sessionAuth:      middleware.SessionAuthMiddleware(authUsecase),
	})

	logger.Info(ctx, "Wardrobe backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)

	if err := runServer(ctx, r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(context.Background(), "Server stopped")
	return nil
}
