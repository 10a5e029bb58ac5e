package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	postAPI "Compass/internal/api/handlers/post"
	"Compass/internal/api/middleware"
	"Compass/internal/api/routes"
	"Compass/internal/config"
	"Compass/internal/core/blobs"
	"Compass/internal/core/comments"
	"Compass/internal/core/likes"
	"Compass/internal/core/posts"
	"Compass/internal/core/themeFeeds"
	"Compass/internal/core/themes"
	"Compass/internal/core/users"
	"Compass/internal/db/migrations"
	postgresRepo "Compass/internal/db/postgres"
	"Compass/internal/metrics"
	"Compass/internal/storage/local"
	"Compass/internal/storage/s3"
	"Compass/internal/telemetry"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("Failed to load env file", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: cfg.OTelServiceName,
		Environment: cfg.Environment,
		Insecure:    cfg.OTelInsecure,
	})
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(c); err != nil {
			slog.Warn("Failed to flush traces", "error", err)
		}
	}()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		return err
	}
	slog.Info("Connected to database")

	if cfg.SkipMigrations {
		slog.Info("Skipping migrations")
	} else {
		if err := migrations.Up(db); err != nil {
			return err
		}
		slog.Info("Migrations completed successfully")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "compass"),
	)
	collector := metrics.NewCollector(registry)

	// Blob store
	store, localStore, err := newBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := postgresRepo.NewUserRepository(db)
	themeRepo := postgresRepo.NewThemeRepository(db)
	likeRepo := postgresRepo.NewLikeRepository(db)
	commentRepo := postgresRepo.NewCommentRepository(db)
	feedRepo := postgresRepo.NewFeedRepository(db)

	// Services
	blobConfig := blobs.DefaultConfig()
	blobConfig.MaxBytes = cfg.MaxUploadBytes
	blobConfig.MaxDimension = cfg.BlobMaxDimension
	blobConfig.UploadTimeout = cfg.BlobUploadTimeout
	blobService := blobs.NewBlobService(store, blobConfig, collector)

	userService := users.NewUserService(userRepo, blobService)
	themeService := themes.NewThemeService(themeRepo)
	likeService := likes.NewLikeService(likeRepo, collector)
	commentService := comments.NewCommentService(commentRepo)
	feedService := themeFeeds.NewThemeFeedService(feedRepo, themeFeeds.Config{
		DefaultLimit: cfg.FeedPageSize,
		MaxLimit:     cfg.FeedMaxPageSize,
	}, collector)
	postService := posts.NewPostService(
		postgresRepo.NewUnitOfWork(db),
		postgresRepo.NewPostRepositories(db),
		commentRepo,
		blobService,
		posts.Config{MaxFilesPerPost: cfg.MaxFilesPerPost},
	)

	// Router
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics(collector))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("Redis unreachable at startup, rate limiting fails open", "error", err)
		}
		r.Use(middleware.NewRedisRateLimiter(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow).Middleware)
		slog.Info("Using Redis rate limiter", "requests", cfg.RateLimitRequests, "window", cfg.RateLimitWindow)
	} else {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
		defer rateLimiter.Close()
		r.Use(rateLimiter.Middleware)
	}

	auth := middleware.NewJWTAuth(cfg.JWTSecret, "")

	routes.RegisterPostRoutes(r, postService, postAPI.Config{
		MaxFiles:       cfg.MaxFilesPerPost,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, auth.RequireAuth, auth.OptionalAuth)
	routes.RegisterThemeRoutes(r, themeService, feedService, auth.OptionalAuth)
	routes.RegisterLikeRoutes(r, likeService, auth.RequireAuth)
	routes.RegisterCommentRoutes(r, commentService, auth.RequireAuth)
	routes.RegisterUserRoutes(r, userService, feedService, cfg.MaxUploadBytes, auth.RequireAuth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		c, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(c); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler(registry))

	if localStore != nil {
		fs := http.StripPrefix("/blobs/", http.FileServer(http.Dir(localStore.Root())))
		r.Handle("/blobs/*", fs)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, "compass.http"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Compass API starting", "port", cfg.Port, "blob_backend", cfg.BlobBackend)
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

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newBlobStore returns the configured store. The local store is also returned
// so the router can serve its files.
func newBlobStore(ctx context.Context, cfg *config.Config) (blobs.Store, *local.Store, error) {
	if cfg.BlobBackend == "s3" {
		store, err := s3.New(s3.Config{
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.BlobPublicBaseURL,
			UseSSL:        cfg.S3UseSSL,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}

	store, err := local.New(cfg.BlobLocalDir, cfg.BlobPublicBaseURL)
	if err != nil {
		return nil, nil, err
	}
	return store, store, nil
}

func newLogger(format, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
