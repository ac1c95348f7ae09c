package http_server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"noders-content-service/internal/application/guard"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	block_http "noders-content-service/internal/infrastructure/inbound/http/block"
	image_http "noders-content-service/internal/infrastructure/inbound/http/image"
	"noders-content-service/internal/infrastructure/inbound/http/middleware"
	post_http "noders-content-service/internal/infrastructure/inbound/http/post"
	profile_http "noders-content-service/internal/infrastructure/inbound/http/profile"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
	"github.com/nrednav/cuid2"
	"github.com/prometheus/client_golang/prometheus"
)

type Handlers struct {
	ListBlocks  *block_http.ListBlocksHandler
	CreateBlock *block_http.CreateBlockHandler
	UpdateBlock *block_http.UpdateBlockHandler
	DeleteBlock *block_http.DeleteBlockHandler
	UploadImage *image_http.UploadImageHandler
	CreatePost  *post_http.CreatePostHandler
	GetPost     *post_http.GetPostHandler
	GetProfile  *profile_http.GetProfileHandler
	UpdateRole  *profile_http.UpdateRoleHandler
}

type Options struct {
	Address   string
	Port      int
	BodyLimit string
	MediaDir  string
	MediaPath string
	// Registerer receives the HTTP collectors. Nil means the default registry.
	Registerer prometheus.Registerer
}

type Server struct {
	echo    *echo.Echo
	address string
	log     ports.Logger
}

func NewServer(opts Options, handlers Handlers, auth *middleware.Authenticator, g *guard.Guard, log ports.Logger, metrics ports.MetricsProvider) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if opts.BodyLimit != "" {
		e.Use(echo_middleware.BodyLimit(opts.BodyLimit))
	}
	e.Use(echo_middleware.RequestIDWithConfig(echo_middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "noders_content",
		Registerer: registerer,
	}))
	e.Use(echo_middleware.Recover())
	e.Use(middleware.RequestLogger(log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.MediaDir != "" && opts.MediaPath != "" {
		e.Static(opts.MediaPath, opts.MediaDir)
	}

	authenticated := middleware.Require(g, guard.Authenticated(), metrics)
	adminOnly := middleware.Require(g, guard.RequireRole(model.RoleAdmin), metrics)

	api := e.Group("", auth.Authenticate())
	api.GET("/posts/:postId", handlers.GetPost.Handle)
	api.GET("/posts/:postId/blocks", handlers.ListBlocks.Handle)
	api.POST("/posts", handlers.CreatePost.Handle, authenticated)
	api.POST("/posts/:postId/blocks", handlers.CreateBlock.Handle, authenticated)
	api.PUT("/posts/:postId/blocks/:blockId", handlers.UpdateBlock.Handle, authenticated)
	api.DELETE("/posts/:postId/blocks/:blockId", handlers.DeleteBlock.Handle, authenticated)
	api.POST("/upload/image", handlers.UploadImage.Handle, authenticated)
	api.GET("/profiles/:userId", handlers.GetProfile.Handle, authenticated)
	api.PUT("/profiles/:userId/role", handlers.UpdateRole.Handle, adminOnly)

	return &Server{
		echo:    e,
		address: fmt.Sprintf("%s:%d", opts.Address, opts.Port),
		log:     log,
	}
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Run() error {
	s.log.Info("Starting HTTP server", slog.String("address", s.address))
	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
