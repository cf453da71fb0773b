package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sweetcrumb/internal/config"
	"sweetcrumb/internal/lib/ratelimit"
	mw "sweetcrumb/internal/middleware"
	httprouters "sweetcrumb/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log       *slog.Logger
	e         *echo.Echo
	routers   *httprouters.Routers
	limiter   *ratelimit.Limiter
	limits    config.RateLimitConfig
	host      string
	port      string
	staticDir string
}

// New builds the echo server. staticDir, when set, is served under
// /uploads for the local media host.
func New(
	log *slog.Logger,
	cfg config.HTTPConfig,
	limits config.RateLimitConfig,
	store sessions.Store,
	limiter *ratelimit.Limiter,
	staticDir string,
	routers *httprouters.Routers,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(session.Middleware(store))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Admin-Key"},
	}))
	e.Use(middleware.Recover())
	e.Use(mw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:       log,
		e:         e,
		routers:   routers,
		limiter:   limiter,
		limits:    limits,
		host:      cfg.Host,
		port:      cfg.Port,
		staticDir: staticDir,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%s", s.host, s.port)
}

// AuthBudget is the allowance shared by admin verify calls and rejected
// admin keys.
func AuthBudget(limiter *ratelimit.Limiter, limits config.RateLimitConfig) ratelimit.Budget {
	return ratelimit.NewBudget(limiter, ratelimit.ScopeAuth, limits.AuthMax, limits.AuthWindow)
}

func (s *Server) BuildRouters() {
	r := s.routers

	adminOnly := mw.RequireAdmin(r.Admin)
	authLimit := mw.RateLimit(AuthBudget(s.limiter, s.limits))
	reviewLimit := mw.RateLimit(ratelimit.NewBudget(s.limiter, ratelimit.ScopeReview, s.limits.ReviewMax, s.limits.ReviewWindow))

	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)
	s.e.GET("/sitemap.xml", r.SitemapXML)
	s.e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if s.staticDir != "" {
		s.e.Static("/uploads", s.staticDir)
	}

	api := s.e.Group("/api")
	{
		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/verify", r.VerifyAdmin, authLimit)
			adminGroup.GET("/check", r.CheckAdmin)
			adminGroup.POST("/logout", r.LogoutAdmin)
		}

		api.POST("/upload", r.UploadMedia, adminOnly)

		blogs := api.Group("/blogs")
		{
			blogs.GET("", r.ListBlogPosts)
			blogs.GET("/:id", r.GetBlogPost)
			blogs.POST("", r.CreateBlogPost, adminOnly)
			blogs.PUT("/:id", r.UpdateBlogPost, adminOnly)
			blogs.DELETE("/:id", r.DeleteBlogPost, adminOnly)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", r.ListCategories)
			categories.GET("/:id", r.GetCategory)
			categories.POST("", r.CreateCategory, adminOnly)
			categories.PUT("/:id", r.UpdateCategory, adminOnly)
			categories.DELETE("/:id", r.DeleteCategory, adminOnly)
		}

		events := api.Group("/events")
		{
			events.GET("", r.ListEvents)
			events.GET("/:id", r.GetEvent)
			events.POST("", r.CreateEvent, adminOnly)
			events.PUT("/:id", r.UpdateEvent, adminOnly)
			events.DELETE("/:id", r.DeleteEvent, adminOnly)
		}

		gallery := api.Group("/gallery")
		{
			gallery.GET("", r.ListGalleryImages)
			gallery.GET("/:id", r.GetGalleryImage)
			gallery.POST("", r.CreateGalleryImage, adminOnly)
			gallery.PUT("/:id", r.UpdateGalleryImage, adminOnly)
			gallery.DELETE("/:id", r.DeleteGalleryImage, adminOnly)
		}

		menu := api.Group("/menu")
		{
			menu.GET("", r.ListMenuItems)
			menu.GET("/:id", r.GetMenuItem)
			menu.POST("", r.CreateMenuItem, adminOnly)
			menu.PUT("/:id", r.UpdateMenuItem, adminOnly)
			menu.DELETE("/:id", r.DeleteMenuItem, adminOnly)
		}

		rateList := api.Group("/rate-list")
		{
			rateList.GET("", r.ListRateList)
			rateList.GET("/:id", r.GetRateListEntry)
			rateList.POST("", r.CreateRateListEntry, adminOnly)
			rateList.PUT("/:id", r.UpdateRateListEntry, adminOnly)
			rateList.DELETE("/:id", r.DeleteRateListEntry, adminOnly)
		}

		reels := api.Group("/reels")
		{
			reels.GET("", r.ListReels)
			reels.GET("/:id", r.GetReel)
			reels.POST("", r.CreateReel, adminOnly)
			reels.PUT("/:id", r.UpdateReel, adminOnly)
			reels.DELETE("/:id", r.DeleteReel, adminOnly)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", r.ListReviews)
			reviews.GET("/:id", r.GetReview)
			reviews.POST("", r.SubmitReview, reviewLimit)
			reviews.PUT("/:id", r.UpdateReview, adminOnly)
			reviews.DELETE("/:id", r.DeleteReview, adminOnly)
		}
	}
}
