package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"

	"noders-content-service/internal/application/guard"
	block_service "noders-content-service/internal/application/service/block"
	image_service "noders-content-service/internal/application/service/image"
	post_service "noders-content-service/internal/application/service/post"
	profile_service "noders-content-service/internal/application/service/profile"
	ports "noders-content-service/internal/domain/ports/output"
	block_repository "noders-content-service/internal/domain/ports/output/block"
	"noders-content-service/internal/domain/ports/output/cache"
	image_repository "noders-content-service/internal/domain/ports/output/image"
	post_repository "noders-content-service/internal/domain/ports/output/post"
	profile_repository "noders-content-service/internal/domain/ports/output/profile"
	"noders-content-service/internal/infrastructure/config"
	cron_jobs "noders-content-service/internal/infrastructure/inbound/cron"
	http_server "noders-content-service/internal/infrastructure/inbound/http"
	block_http "noders-content-service/internal/infrastructure/inbound/http/block"
	image_http "noders-content-service/internal/infrastructure/inbound/http/image"
	"noders-content-service/internal/infrastructure/inbound/http/middleware"
	post_http "noders-content-service/internal/infrastructure/inbound/http/post"
	profile_http "noders-content-service/internal/infrastructure/inbound/http/profile"
	metrics_server "noders-content-service/internal/infrastructure/inbound/metrics"
	"noders-content-service/internal/infrastructure/logger"
	memory_cache "noders-content-service/internal/infrastructure/outbound/cache/memory"
	redis_cache "noders-content-service/internal/infrastructure/outbound/cache/redis"
	nats_events "noders-content-service/internal/infrastructure/outbound/events/nats"
	noop_events "noders-content-service/internal/infrastructure/outbound/events/noop"
	prometheus_metrics "noders-content-service/internal/infrastructure/outbound/metrics/prometheus"
	block_postgres "noders-content-service/internal/infrastructure/outbound/repository/block/postgres"
	image_postgres "noders-content-service/internal/infrastructure/outbound/repository/image/postgres"
	memory_uow "noders-content-service/internal/infrastructure/outbound/repository/memory"
	post_postgres "noders-content-service/internal/infrastructure/outbound/repository/post/postgres"
	"noders-content-service/internal/infrastructure/outbound/repository/postgres"
	profile_memory "noders-content-service/internal/infrastructure/outbound/repository/profile/memory"
	profile_postgres "noders-content-service/internal/infrastructure/outbound/repository/profile/postgres"
	filesystem_storage "noders-content-service/internal/infrastructure/outbound/storage/filesystem"
)

type repositories struct {
	uow      postgres.UnitOfWork
	posts    post_repository.Repository
	blocks   block_repository.Repository
	images   image_repository.Repository
	profiles profile_repository.Repository
}

func main() {
	cfg := config.MustLoad()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	if cfg.Auth.JWTSecret == "" {
		log.Error("auth.jwt_secret must be set")
		os.Exit(1)
	}

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	var repos repositories
	switch cfg.Database.Driver {
	case "memory":
		log.Warn("Using in-memory storage, data is lost on restart")
		uow := memory_uow.NewUnitOfWork(log)
		repos = repositories{
			uow:      uow,
			posts:    uow.Posts,
			blocks:   uow.Blocks,
			images:   uow.Images,
			profiles: profile_memory.NewProfileRepository(log),
		}
	case "postgres":
		dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DbName)

		if err := postgres.RunMigrations(dsn, cfg.Database.MigrationsPath, log); err != nil {
			log.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		poolConfig, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
			os.Exit(1)
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		repos = repositories{
			uow:      postgres.NewPostgresUOW(pool, log, metrics),
			posts:    post_postgres.NewPostRepository(pool, log, metrics),
			blocks:   block_postgres.NewBlockRepository(pool, log, metrics),
			images:   image_postgres.NewImageRepository(pool, log, metrics),
			profiles: profile_postgres.NewProfileRepository(pool, log, metrics),
		}
	default:
		log.Error("Unknown database driver", slog.String("driver", cfg.Database.Driver))
		os.Exit(1)
	}

	var profileCache cache.ProfileCache
	if cfg.Redis.Enabled {
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		redisClient, err := redis_cache.NewClient(cfg.Redis, log)
		if err != nil {
			log.Error("Failed to create Redis client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()
		profileCache = redis_cache.NewProfileCache(redisClient, log)
	} else {
		profileCache = memory_cache.NewProfileCache()
	}

	var events ports.EventPublisher
	if cfg.Nats.URL != "" {
		publisher, err := nats_events.NewPublisher(cfg.Nats.URL, log)
		if err != nil {
			log.Error("Failed to connect to NATS", slog.String("error", err.Error()))
			os.Exit(1)
		}
		events = publisher
	} else {
		events = noop_events.NewPublisher(log)
	}
	defer func() {
		if err := events.Close(); err != nil {
			log.Error("Failed to close event publisher", slog.String("error", err.Error()))
		}
	}()

	store, err := filesystem_storage.NewStore(cfg.Storage.Dir, cfg.Storage.PublicBaseURL, log)
	if err != nil {
		log.Error("Failed to prepare object storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metrics.SetServiceHealth(true)

	blockService := block_service.NewBlockService(repos.blocks, repos.posts, repos.uow, events, log, metrics)
	postService := post_service.NewPostService(repos.posts, repos.blocks, log)
	imageService := image_service.NewImageService(repos.images, store, events, log, metrics, image_service.Options{
		MaxBytes:   cfg.Uploads.MaxBytes,
		BatchLimit: cfg.Uploads.SweepBatchLimit,
	})
	originalProfileService := profile_service.NewProfileService(repos.profiles, log)
	profileService := profile_service.NewProfileServiceCacheDecorator(
		originalProfileService,
		profileCache,
		cfg.Cache.ProfileTTL,
		log,
		metrics,
	)

	validate := validator.New()
	authenticator := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, profileService, log)
	accessGuard := guard.New(cfg.Auth.LoginPath)

	httpServer := http_server.NewServer(http_server.Options{
		Address:   cfg.HTTPServer.Address,
		Port:      cfg.HTTPServer.Port,
		BodyLimit: cfg.HTTPServer.BodyLimit,
		MediaDir:  cfg.Storage.Dir,
		MediaPath: cfg.Storage.PublicBaseURL,
	}, http_server.Handlers{
		ListBlocks:  block_http.NewListBlocksHandler(blockService, log),
		CreateBlock: block_http.NewCreateBlockHandler(blockService, validate, log),
		UpdateBlock: block_http.NewUpdateBlockHandler(blockService, validate, log),
		DeleteBlock: block_http.NewDeleteBlockHandler(blockService, log),
		UploadImage: image_http.NewUploadImageHandler(imageService, validate, cfg.Uploads.MaxBytes, log),
		CreatePost:  post_http.NewCreatePostHandler(postService, validate, log),
		GetPost:     post_http.NewGetPostHandler(postService, log),
		GetProfile:  profile_http.NewGetProfileHandler(profileService, log),
		UpdateRole:  profile_http.NewUpdateRoleHandler(profileService, validate, log),
	}, authenticator, accessGuard, log, metrics)

	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	sweeper, err := cron_jobs.NewOrphanSweeper(imageService, cfg.Uploads.SweepSchedule, cfg.Uploads.OrphanGrace, log)
	if err != nil {
		log.Error("Failed to schedule orphan sweeper", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sweeper.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()

	sweeper.Stop(shutdownCtx)

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}
