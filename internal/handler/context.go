package handlers

import (
	"context"

	"gyansetu/internal/models"
)

type ctxKey int

const sessionKey ctxKey = iota

// WithSession stores the authenticated session on the request context.
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	return session, ok && session != nil && session.User != nil
}

// CurrentUser is the session's user snapshot, or nil outside authenticated routes.
func CurrentUser(ctx context.Context) *models.User {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return nil
	}
	return session.User
}
