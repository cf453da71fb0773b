package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpapp "sweetcrumb/internal/app/http"
	"sweetcrumb/internal/config"
	"sweetcrumb/internal/lib/logger/sl"
	"sweetcrumb/internal/lib/ratelimit"
	"sweetcrumb/internal/repository"
	admin "sweetcrumb/internal/services/admin_service"
	blog "sweetcrumb/internal/services/blog_service"
	category "sweetcrumb/internal/services/category_service"
	event "sweetcrumb/internal/services/event_service"
	gallery "sweetcrumb/internal/services/gallery_service"
	media "sweetcrumb/internal/services/media_service"
	menu "sweetcrumb/internal/services/menu_service"
	ratelist "sweetcrumb/internal/services/rate_list_service"
	reel "sweetcrumb/internal/services/reel_service"
	review "sweetcrumb/internal/services/review_service"
	sitemap "sweetcrumb/internal/services/sitemap_service"
	"sweetcrumb/internal/storage/mediahost"
	"sweetcrumb/internal/storage/postgresql"
	redisapp "sweetcrumb/internal/storage/redis"
	httprouters "sweetcrumb/internal/transport/http"

	"github.com/gorilla/sessions"
)

const (
	envProd = "prod"

	sessionDriverRedis = "redis"
	mediaDriverS3      = "s3"

	memorySessionCleanup = 10 * time.Minute
)

type App struct {
	HTTPServer *httpapp.Server

	log     *slog.Logger
	repo    *repository.Repository
	redis   *redisapp.Client
	limiter *ratelimit.Limiter
}

// New connects every backing store and assembles the HTTP server. The
// schema is migrated on start.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	db, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := &App{
		log:     log,
		repo:    repository.NewRepository(db),
		limiter: ratelimit.New(),
	}

	sessionRepo, err := a.sessionRepository(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	host, staticDir, err := mediaHost(ctx, cfg.Media)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	store := sessions.NewCookieStore([]byte(cfg.CookieHashKey))

	adminService, err := admin.NewAdminService(log, cfg.AdminKey, sessionRepo, store, cfg.Session.TTL, cfg.Env == envProd)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	adminService.LimitKeyAttempts(httpapp.AuthBudget(a.limiter, cfg.RateLimit))

	mediaService := media.NewMediaService(log, host)

	routers := httprouters.NewRouter(log, httprouters.Services{
		Admin:    adminService,
		Media:    mediaService,
		Blog:     blog.NewBlogService(log, a.repo.Blog, mediaService),
		Category: category.NewCategoryService(log, a.repo.Category),
		Event:    event.NewEventService(log, a.repo.Event, mediaService),
		Gallery:  gallery.NewGalleryService(log, a.repo.Gallery, mediaService),
		Menu:     menu.NewMenuService(log, a.repo.Menu, a.repo.Category, mediaService),
		RateList: ratelist.NewRateListService(log, a.repo.RateList),
		Reel:     reel.NewReelService(log, a.repo.Reel, mediaService),
		Review:   review.NewReviewService(log, a.repo.Review),
		Sitemap:  sitemap.NewSitemapService(log, cfg.SiteURL, a.repo.Blog),
	})

	a.HTTPServer = httpapp.New(log, cfg.HTTP, cfg.RateLimit, store, a.limiter, staticDir, routers)
	a.HTTPServer.BuildRouters()

	return a, nil
}

func (a *App) sessionRepository(ctx context.Context, cfg *config.Config) (repository.SessionRepository, error) {
	if cfg.Session.Driver != sessionDriverRedis {
		a.log.Info("admin sessions kept in memory")
		return repository.NewMemorySessionRepo(memorySessionCleanup), nil
	}

	client := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err := client.HealthCheck(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	a.redis = client

	a.log.Info("admin sessions kept in redis", slog.String("addr", cfg.Redis.RedisAddr))

	return repository.NewRedisSessionRepo(client), nil
}

// mediaHost picks the upload backend. The returned directory is non-empty
// only for the local host, whose files the server publishes itself.
func mediaHost(ctx context.Context, cfg config.MediaConfig) (mediahost.MediaHost, string, error) {
	if cfg.Driver == mediaDriverS3 {
		host, err := mediahost.NewS3(ctx, mediahost.S3Options{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PublicURL: cfg.S3.PublicURL,
			MaxSize:   cfg.MaxSize,
		})
		if err != nil {
			return nil, "", err
		}

		return host, "", nil
	}

	host, err := mediahost.NewLocal(cfg.BaseDir, cfg.BaseURL, cfg.MaxSize)
	if err != nil {
		return nil, "", err
	}

	return host, host.Dir(), nil
}

// Close releases the database pool and the redis client.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("failed to close redis", sl.Err(err))
		}
	}

	a.repo.Close()
}

// Migrate only applies the schema.
func Migrate(ctx context.Context, cfg *config.Config) error {
	db, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	return postgresql.Migrate(ctx, db)
}
