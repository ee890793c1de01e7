package api

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/tablero/internal/metrics"
)

// HeaderUserID names the acting user for requests that need one.
const HeaderUserID = "X-User-ID"

// RequestLogger logs one line per request at info, or warn for 5xx.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}

			status := c.Response().Status
			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelWarn
			}
			logger.Log(c.Request().Context(), level, "http request",
				"method", c.Request().Method,
				"route", c.Path(),
				"uri", c.Request().RequestURI,
				"status", status,
				"duration", time.Since(start),
				"remote_ip", c.RealIP())
			return nil
		}
	}
}

// Metrics records every request against its route pattern.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			done := m.Begin(c.Request().Method, route)
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			done(c.Response().Status)
			return nil
		}
	}
}
