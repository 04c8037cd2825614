package context

import (
	"context"

	"github.com/octabyte/quizmaster-client/models"
)

type sessionKey struct{}

func WithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session stored in ctx. A context without one yields the
// anonymous session.
func GetSessionFromContext(ctx context.Context) models.Session {
	session, _ := ctx.Value(sessionKey{}).(models.Session)
	return session
}
