package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/quizmaster-client/models"
	"github.com/octabyte/quizmaster-client/token"
	quizcontext "github.com/octabyte/quizmaster-client/utils/context"
	"github.com/octabyte/quizmaster-client/utils/logger"
)

// SetSessionFromJWTToken decodes the token placed by SetTokenInContext and stores the resulting
// session on the request. Requests with a missing or malformed token proceed anonymously.
func SetSessionFromJWTToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get(TokenKey).(string)
			if raw == "" {
				return next(c)
			}

			claims, err := token.Decode(raw)
			if err != nil {
				logger.LogDebug("ignoring malformed request token", zap.Error(err))
				return next(c)
			}

			session := models.Session{
				User:  &models.User{ID: claims.Subject, Role: claims.Role},
				Token: raw,
			}
			c.Set(RequestSessionKey, session)
			c.SetRequest(c.Request().WithContext(quizcontext.WithSession(c.Request().Context(), session)))
			return next(c)
		}
	}
}
