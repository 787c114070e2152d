package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"loan-schedule/internal/api/handler/dto"
	"loan-schedule/internal/config"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const usernameKey contextKey = "username"

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// UsernameFromContext returns the authenticated caller, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok
}

// AuthMiddleware requires an HS256 bearer token when auth is enabled and is a
// no-op otherwise.
func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	logger = logger.With("component", "AuthMiddleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := validateJWT(r, cfg.JWTSecret, logger)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(dto.ErrorResponse{
					Error: dto.ErrorDetail{Code: "unauthorized", Message: "Unauthorized"},
				})
				return
			}
			ctx := r.Context()
			if name, isString := claims["username"].(string); isString {
				ctx = context.WithValue(ctx, usernameKey, name)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validateJWT(r *http.Request, secret string, logger *slog.Logger) (jwt.MapClaims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.WarnContext(r.Context(), "Missing Authorization header")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		logger.WarnContext(r.Context(), "Invalid Authorization header format")
		return nil, false
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		logger.WarnContext(r.Context(), "Invalid token", "error", err)
		return nil, false
	}

	logger.DebugContext(r.Context(), "Authenticated request", "username", claims["username"])
	return claims, true
}
