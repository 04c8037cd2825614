// Package echo serves the navigation surface over HTTP: every GET path is resolved against the
// front-end route table using the session carried by the request.
package echo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"

	"github.com/octabyte/quizmaster-client/interfaces/http/echo/middleware"
	"github.com/octabyte/quizmaster-client/models"
	otelecho "github.com/octabyte/quizmaster-client/otel/echo"
	"github.com/octabyte/quizmaster-client/router"
	"github.com/octabyte/quizmaster-client/utils/logger"
)

const (
	DefaultAddr        = "127.0.0.1:8080"
	DefaultServiceName = "quiznav"
	healthPath         = "/healthz"

	// ShutdownTimeout bounds a graceful shutdown.
	ShutdownTimeout = 5 * time.Second
)

type Config struct {
	Addr        string
	ServiceName string
}

type Server struct {
	echo   *echo.Echo
	router *router.Router
	addr   string
}

// NewServer wires the navigation routes. fallback supplies the session of requests that carry
// no token; nil leaves them anonymous.
func NewServer(cfg Config, r *router.Router, fallback func() models.Session) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.HTTPErrorHandler = errorHandler

	s := &Server{echo: e, router: r, addr: cfg.Addr}

	e.Use(echomiddleware.Recover())
	e.Use(otelecho.MiddlewareWithConfig(cfg.ServiceName, func(c echo.Context) bool {
		return c.Path() == healthPath
	}))
	e.Use(requestLogger())
	e.Use(middleware.SetTokenInContext())
	e.Use(middleware.SetSessionFromJWTToken())
	e.Use(middleware.SetSessionInContext(fallback))

	e.GET(healthPath, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/", s.navigate)
	e.GET("/*", s.navigate)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Addr() string {
	return s.addr
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	logger.LogInfo("navigation server listening", zap.String("addr", s.addr))
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) navigate(c echo.Context) error {
	session := middleware.GetSession(c)

	res, err := s.router.Resolve(c.Request().URL.Path, session)
	if errors.Is(err, router.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "page not found")
	}
	if err != nil {
		return err
	}

	if res.Redirect != "" {
		return c.Redirect(http.StatusFound, res.Redirect)
	}
	return c.JSON(http.StatusOK, res)
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := http.StatusText(status)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	} else {
		logger.LogError("navigation request failed", zap.Error(err), zap.String("path", c.Request().URL.Path))
	}

	if err := c.JSON(status, map[string]string{"msg": msg}); err != nil {
		logger.LogError("write error response", zap.Error(err))
	}
}

func requestLogger() echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			logger.LogInfo("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Bool("authenticated", middleware.GetSession(c).Authenticated()),
			)
			return nil
		},
	})
}
