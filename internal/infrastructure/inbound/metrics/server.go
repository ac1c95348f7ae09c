package metrics_server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	ports "noders-content-service/internal/domain/ports/output"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

type MetricsServer struct {
	echo    *echo.Echo
	address string
	log     ports.Logger
}

func NewMetricsServer(address string, port int, log ports.Logger) *MetricsServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/metrics", echoprometheus.NewHandler())

	return &MetricsServer{
		echo:    e,
		address: fmt.Sprintf("%s:%d", address, port),
		log:     log,
	}
}

func (s *MetricsServer) Run() error {
	s.log.Info("Starting metrics server", slog.String("address", s.address))
	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
