package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octabyte/quizmaster-client/enums"
	"github.com/octabyte/quizmaster-client/models"
	quizcontext "github.com/octabyte/quizmaster-client/utils/context"
)

func signedToken(t *testing.T, sub, role string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub, "role": role}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

type observed struct {
	token      string
	ctxToken   string
	session    models.Session
	ctxSession models.Session
}

func run(t *testing.T, req *http.Request, fallback func() models.Session) observed {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got observed
	handler := func(c echo.Context) error {
		got.token, _ = c.Get(TokenKey).(string)
		got.ctxToken = quizcontext.GetTokenFromContext(c.Request().Context())
		got.session = GetSession(c)
		got.ctxSession = quizcontext.GetSessionFromContext(c.Request().Context())
		return nil
	}

	chain := SetTokenInContext()(SetSessionFromJWTToken()(SetSessionInContext(fallback)(handler)))
	require.NoError(t, chain(c))
	return got
}

func TestTokenFromBearerHeader(t *testing.T) {
	raw := signedToken(t, "7", "member")
	req := httptest.NewRequest(http.MethodGet, "/subjects", nil)
	req.Header.Set(Authorization, "Bearer "+raw)

	got := run(t, req, nil)

	assert.Equal(t, raw, got.token)
	assert.Equal(t, raw, got.ctxToken)
	require.NotNil(t, got.session.User)
	assert.Equal(t, "7", got.session.User.ID)
	assert.Equal(t, enums.RoleMember, got.session.User.Role)
	assert.Equal(t, got.session, got.ctxSession)
}

func TestTokenFromRawHeader(t *testing.T) {
	raw := signedToken(t, "1", "admin")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Authorization, raw)

	got := run(t, req, nil)
	assert.True(t, got.session.IsAdmin())
}

func TestTokenFromCookie(t *testing.T) {
	raw := signedToken(t, "1", "admin")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: raw})

	got := run(t, req, nil)
	assert.Equal(t, raw, got.token)
	assert.True(t, got.session.IsAdmin())
}

func TestHeaderWinsOverCookie(t *testing.T) {
	header := signedToken(t, "7", "member")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Authorization, "bearer "+header)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: signedToken(t, "1", "admin")})

	got := run(t, req, nil)
	assert.Equal(t, header, got.token)
	assert.False(t, got.session.IsAdmin())
}

func TestMalformedTokenIsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Authorization, "Bearer garbage")

	fallbackCalled := false
	got := run(t, req, func() models.Session {
		fallbackCalled = true
		return models.Session{User: &models.User{ID: "9"}, Token: "x"}
	})

	assert.Equal(t, "garbage", got.token)
	assert.False(t, got.session.Authenticated())
	assert.False(t, fallbackCalled)
}

func TestNoTokenUsesFallback(t *testing.T) {
	local := models.Session{User: &models.User{ID: "9", Role: enums.RoleMember}, Token: "x"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	got := run(t, req, func() models.Session { return local })

	assert.Empty(t, got.token)
	assert.Empty(t, got.ctxToken)
	assert.Equal(t, local, got.session)
	assert.Equal(t, local, got.ctxSession)
}

func TestNoTokenNoFallback(t *testing.T) {
	got := run(t, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.False(t, got.session.Authenticated())
	assert.Nil(t, got.session.User)
}

func TestTokenFromHeaderParsing(t *testing.T) {
	assert.Equal(t, "abc", tokenFromHeader("Bearer abc"))
	assert.Equal(t, "abc", tokenFromHeader("  BEARER   abc "))
	assert.Equal(t, "abc", tokenFromHeader("abc"))
	assert.Equal(t, "", tokenFromHeader(""))
	assert.Equal(t, "Bear", tokenFromHeader("Bear"))
}
