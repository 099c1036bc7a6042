package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"inkspace/internal/config"
	"inkspace/internal/database"
	"inkspace/internal/middleware"
	"inkspace/internal/modules/admin"
	"inkspace/internal/modules/ai"
	"inkspace/internal/modules/auth"
	"inkspace/internal/modules/gateway"
	"inkspace/internal/modules/store"
	"inkspace/internal/modules/view"
	jwtsvc "inkspace/internal/pkg/jwt"
	"inkspace/internal/pkg/logger"
	"inkspace/internal/pkg/metrics"
	"inkspace/internal/pkg/response"
	"inkspace/internal/repository"
	"inkspace/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const sessionSweepInterval = time.Minute

func serveCmd() *cobra.Command {
	var corsOrigins string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), corsOrigins)
		},
	}
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Extra allowed CORS origins, comma separated")
	return cmd
}

func serve(ctx context.Context, corsOrigins string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	log := logger.Component("server")
	if err := database.Migrate(db); err != nil {
		return err
	}

	objects, static, err := newObjectStore(ctx, cfg)
	if err != nil {
		return err
	}

	var cache auth.SessionCache = auth.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		cache = auth.NewRedisCache(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions cached in redis")
	}

	gw := gateway.New(db, objects)
	tokens := jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL)
	authService := auth.NewService(
		repository.NewIdentityRepository(db),
		gw,
		tokens,
		cache,
		auth.DevAdmin{Enabled: cfg.DevAdminBypass, Username: cfg.DevAdminUsername, Password: cfg.DevAdminPassword},
		cfg.SessionTTL,
	)

	var bio store.BioDrafter = ai.Unconfigured{}
	if drafter, err := ai.NewOpenAIDrafter(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model); err == nil {
		bio = drafter
	} else {
		log.Warn().Err(err).Msg("AI bio drafting disabled")
	}

	registry := store.NewRegistry(gw, bio, store.NewFilePreferences(cfg.PreferencesDir), tokens, store.Options{
		PollInterval:  cfg.NotificationPollInterval,
		ToastDuration: cfg.ToastDuration,
	})
	defer registry.CloseAll()
	go registry.RunSweeper(ctx, sessionSweepInterval)

	authHandler := auth.NewHandler(authService)
	storeHandler := store.NewHandler(registry, gw)
	viewHandler := view.NewHandler()
	adminHandler := admin.NewHandler(admin.NewService(
		repository.NewStatsRepository(db),
		repository.NewVerificationRepository(db),
	))
	authHandler.OnLogout(storeHandler.CloseSession)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.ErrorLogger(), middleware.CORS(corsOrigins))
	if static != nil {
		r.Static(static.URLBase(), static.BaseDir())
	}

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "sessions": registry.Len()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/features", func(c *gin.Context) {
			_, aiReady := bio.(*ai.OpenAIDrafter)
			response.Success(c, http.StatusOK, gin.H{
				"aiBio":      aiReady,
				"maps":       cfg.MapsAPIKey != "",
				"mapsApiKey": cfg.MapsAPIKey,
			})
		})
		authHandler.RegisterPublicRoutes(v1)
		viewHandler.RegisterPublicRoutes(v1)
		storeHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(authService))
		{
			authHandler.RegisterProtectedRoutes(protected)
			storeHandler.RegisterProtectedRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminGroup)
			storeHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newObjectStore returns the configured object store and, for the local
// driver, the store whose directory the server exposes.
func newObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, *storage.LocalStore, error) {
	if cfg.Storage.Driver == "s3" {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:    cfg.Storage.S3Region,
			Bucket:    cfg.Storage.S3Bucket,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
			Endpoint:  cfg.Storage.S3Endpoint,
			PublicURL: cfg.Storage.S3PublicURL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("object storage: %w", err)
		}
		return s3Store, nil, nil
	}
	local := storage.NewLocalStore(cfg.Storage.UploadsDir, cfg.Storage.UploadsURL)
	return local, local, nil
}
