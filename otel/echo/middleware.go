package echo

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/octabyte/quizmaster-client/interfaces/http/echo/middleware"
)

// Middleware returns an Echo middleware that instruments HTTP requests with OpenTelemetry
func Middleware(serviceName string) echo.MiddlewareFunc {
	return MiddlewareWithConfig(serviceName, nil)
}

// MiddlewareWithConfig is Middleware with a skipper for requests that should not be traced.
func MiddlewareWithConfig(serviceName string, skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	var opts []otelecho.Option
	if skipper != nil {
		opts = append(opts, otelecho.WithSkipper(skipper))
	}
	baseMiddleware := otelecho.Middleware(serviceName, opts...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return baseMiddleware(func(c echo.Context) error {
			err := next(c)

			span := trace.SpanFromContext(c.Request().Context())
			if !span.IsRecording() {
				return err
			}

			span.SetAttributes(attribute.String("http.route", c.Path()))

			session := middleware.GetSession(c)
			span.SetAttributes(attribute.Bool("user.authenticated", session.Authenticated()))
			if session.User != nil {
				span.SetAttributes(
					attribute.String("user.id", session.User.ID),
					attribute.String("user.role", string(session.User.Role)),
				)
			}

			if err != nil {
				span.SetAttributes(attribute.String("error.message", err.Error()))
			}
			return err
		})
	}
}
