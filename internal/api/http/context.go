package http

import (
	"context"
	"errors"

	"garbage-billing-backend/internal/security"
)

type contextKey struct{}

var errNoClaims = errors.New("request carries no authenticated user")

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFromContext returns the token claims the auth middleware attached.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, error) {
	claims, ok := ctx.Value(contextKey{}).(*security.UserClaims)
	if !ok || claims == nil {
		return nil, errNoClaims
	}
	return claims, nil
}

// GetUserIDFromContext extracts the user ID set by the auth middleware.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", errNoClaims
	}
	return claims.UserID, nil
}
