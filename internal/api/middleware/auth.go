package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Context keys for storing user information
type contextKey string

const UserIDKey contextKey = "user_id"

// JWTAuth verifies HS256 bearer tokens issued by the account service.
// The numeric "sub" claim is the user id.
type JWTAuth struct {
	secret []byte
	issuer string
}

// NewJWTAuth creates the middleware. issuer is checked when non-empty.
func NewJWTAuth(secret, issuer string) *JWTAuth {
	return &JWTAuth{secret: []byte(secret), issuer: issuer}
}

// RequireAuth ensures the request carries a valid token.
// If not authenticated, returns 401. Otherwise injects the user id.
func (m *JWTAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, err := m.verify(token)
		if err != nil {
			slog.Warn("[AUTH_FAILURE] token rejected",
				"ip", getClientIP(r), "method", r.Method, "path", r.URL.Path, "error", err)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the user id if a valid token is present, but doesn't require it
func (m *JWTAuth) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.verify(strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
		if err != nil {
			slog.Debug("[AUTH] optional auth failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verify parses the token and returns the user id from its subject
func (m *JWTAuth) verify(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, errors.New("empty token")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("invalid subject %q", claims.Subject)
	}

	return userID, nil
}

// GetUserID extracts the authenticated user id from the request context.
// Returns 0 if not authenticated.
func GetUserID(r *http.Request) int64 {
	id, _ := r.Context().Value(UserIDKey).(int64)
	return id
}

// SetTestUserID sets the user id in the context.
// This function should ONLY be used in tests to mock authenticated users.
func SetTestUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	response := `{"error":"AuthRequired","message":"` + message + `"}`
	if _, err := w.Write([]byte(response)); err != nil {
		slog.Error("Failed to write auth error response", "error", err)
	}
}
