package middleware

const (
	Authorization     = "Authorization"
	AccessTokenCookie = "access_token"
	BearerPrefix      = "Bearer "

	// Keys of the values stored on echo.Context.
	TokenKey          = "requestToken"
	RequestSessionKey = "requestSession"
)
