package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/octabyte/quizmaster-client/models"
	quizcontext "github.com/octabyte/quizmaster-client/utils/context"
)

// SetSessionInContext fills in the session of requests that did not bring their own token, using
// fallback. The navigation server passes the local session store's snapshot so a browser on the
// same machine navigates as the logged-in CLI user.
func SetSessionInContext(fallback func() models.Session) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if fallback == nil {
				return next(c)
			}
			if _, ok := c.Get(RequestSessionKey).(models.Session); ok {
				return next(c)
			}
			if raw, _ := c.Get(TokenKey).(string); raw != "" {
				// A token was sent but did not decode: stay anonymous.
				return next(c)
			}

			session := fallback()
			c.Set(RequestSessionKey, session)
			c.SetRequest(c.Request().WithContext(quizcontext.WithSession(c.Request().Context(), session)))
			return next(c)
		}
	}
}

// GetSession returns the session resolved for c, anonymous when none was set.
func GetSession(c echo.Context) models.Session {
	session, _ := c.Get(RequestSessionKey).(models.Session)
	return session
}
