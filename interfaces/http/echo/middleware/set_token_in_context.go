package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/quizmaster-client/utils/logger"
	quizcontext "github.com/octabyte/quizmaster-client/utils/context"
)

// SetTokenInContext extracts the raw access token from the Authorization header ("Bearer" scheme
// optional) or, failing that, from the access_token cookie.
func SetTokenInContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromHeader(c.Request().Header.Get(Authorization))

			if token == "" {
				cookie, err := c.Cookie(AccessTokenCookie)
				if err != nil && !errors.Is(err, http.ErrNoCookie) {
					logger.LogErrorf("Error retrieving access token cookie: %v", err)
				}
				if err == nil {
					token = strings.TrimSpace(cookie.Value)
				}
			}

			c.Set(TokenKey, token)
			if token != "" {
				c.SetRequest(c.Request().WithContext(quizcontext.WithToken(c.Request().Context(), token)))
			}
			return next(c)
		}
	}
}

func tokenFromHeader(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= len(BearerPrefix) && strings.EqualFold(value[:len(BearerPrefix)], BearerPrefix) {
		value = value[len(BearerPrefix):]
	}
	return strings.TrimSpace(value)
}
