package middleware

import (
	"context"
	"net/http"
	"strings"

	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/response"
	"stockledger/internal/pkg/token"
)

type contextKey int

const userClaimsKey contextKey = iota

// UserClaims is the authenticated caller attached to the request context.
type UserClaims struct {
	UserID string
	Role   domain.UserRole
}

// TokenValidator is satisfied by *token.Service.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// Auth validates a bearer token and stores its claims in the context. A nil
// validator disables authentication and every request passes through.
type Auth struct {
	tokens TokenValidator
	log    logger.Logger
}

func NewAuth(tokens TokenValidator, log logger.Logger) *Auth {
	return &Auth{tokens: tokens, log: log}
}

// Enabled reports whether requests are checked at all.
func (a *Auth) Enabled() bool {
	return a != nil && a.tokens != nil
}

// RequireAdmin rejects requests without a valid admin token.
func (a *Auth) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	if !a.Enabled() {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			response.Error(w, r, a.log, apperror.NewUnauthorizedError("missing or malformed bearer token"))
			return
		}

		claims, err := a.tokens.ValidateToken(tokenString)
		if err != nil {
			response.Error(w, r, a.log, apperror.NewUnauthorizedError("invalid or expired token"))
			return
		}

		user := UserClaims{UserID: claims.UserID, Role: domain.UserRole(claims.Role)}
		if user.Role != domain.RoleAdmin {
			response.Status(w, http.StatusForbidden, "FORBIDDEN", "admin role required")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userClaimsKey, user)))
	}
}

// UserFromContext returns the claims stored by RequireAdmin.
func UserFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(UserClaims)
	return claims, ok
}
