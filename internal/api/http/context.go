package http

import (
	"context"

	"studybuddy-backend/internal/domain"
)

type contextKey int

const userIDKey contextKey = iota

func withUserID(ctx context.Context, userID int32) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext returns the authenticated user placed on the request
// by the auth middleware.
func GetUserIDFromContext(ctx context.Context) (int32, error) {
	userID, ok := ctx.Value(userIDKey).(int32)
	if !ok {
		return 0, domain.NewUnauthenticatedError("authentication required")
	}
	return userID, nil
}
