package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewRouter builds the echo instance serving s, the health check and the
// Prometheus scrape endpoint.
func NewRouter(s *Server, logger *slog.Logger) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return err
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	RegisterHandlers(e, s)
	return e
}

// RegisterHandlers mounts the API routes of s on e.
func RegisterHandlers(e *echo.Echo, s *Server) {
	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetOrders)
	v1.DELETE("/orders/:id", s.DeleteOrder)
	v1.POST("/orders/:id/retry", s.RetryOrder)
	v1.GET("/dead-letters", s.GetDeadLetters)
	v1.GET("/vehicles", s.GetVehicles)

	e.POST("/transportation-pass", s.TransportPassenger)
	e.POST("/transportation-bagg", s.TransportBaggage)
}
