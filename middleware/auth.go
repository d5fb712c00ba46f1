package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"krist-backend/apperr"
	"krist-backend/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// AuthMiddleware verifies the bearer token and attaches the resolved claims
// to the request context. A missing or malformed header is Unauthenticated
// (401); a token that fails verification is InvalidCredential (403).
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			apperr.Write(w, apperr.New(apperr.Unauthenticated, http.StatusUnauthorized, "No token provided"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			apperr.Write(w, apperr.New(apperr.Unauthenticated, http.StatusUnauthorized, "Invalid Authorization header format"))
			return
		}

		claims := &utils.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return utils.JwtKey, nil
		})
		if err != nil || !token.Valid {
			apperr.Write(w, apperr.New(apperr.InvalidCredential, http.StatusForbidden, "Invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user id set by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(UserContextKey).(*utils.Claims)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}
