package middleware

import (
	"log/slog"
	"time"

	ports "noders-content-service/internal/domain/ports/output"

	"github.com/labstack/echo/v4"
)

func RequestLogger(log ports.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Int("status", c.Response().Status),
				slog.Duration("latency", time.Since(start)),
				slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			}
			if c.Response().Status >= 500 {
				log.Warn("Request completed with server error", attrs...)
			} else {
				log.Debug("Request completed", attrs...)
			}
			return nil
		}
	}
}
