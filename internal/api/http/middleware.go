package http

import (
	"net/http"
	"strings"

	"garbage-billing-backend/internal/config"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/security"

	"github.com/gorilla/mux"
)

type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// Handler authenticates requests according to the security level of the
// matched route name.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.SecurityAccess
		if route := mux.CurrentRoute(r); route != nil {
			level = config.GetSecurityLevel(route.GetName())
		}

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token := extractToken(r)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			logger.Debug("Rejected token", "path", r.URL.Path, "error", err)
			writeMessage(w, http.StatusUnauthorized, err.Error())
			return
		}

		if msg := checkSecurityLevel(level, claims); msg != "" {
			writeMessage(w, http.StatusForbidden, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func extractToken(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return token
}

func checkSecurityLevel(level config.SecurityLevel, claims *security.UserClaims) string {
	switch level {
	case config.SecurityAccess:
		if claims.Type != security.TokenTypeAccess {
			return "access token required"
		}
	case config.SecurityRefresh:
		if claims.Type != security.TokenTypeRefresh {
			return "refresh token required"
		}
	}
	return ""
}
