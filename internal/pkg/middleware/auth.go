package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sjsjaniw/workout-backend/internal/pkg/httpx"
	"github.com/sjsjaniw/workout-backend/internal/pkg/router"
)

type ctxKey struct{}

var userIDKey ctxKey

// Auth rejects requests without a valid HS256 bearer token and stores the
// token subject in the request context.
func Auth(key any) router.Middleware {
	return func(next http.Handler) http.Handler {
		return authMiddleware(next, key)
	}
}

func authMiddleware(next http.Handler, key any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawToken := strings.TrimSpace(r.Header.Get("Authorization"))
		rawToken = strings.TrimSpace(strings.TrimPrefix(rawToken, "Bearer "))
		if rawToken == "" {
			unauthorized(w)
			return
		}

		token, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil {
			authError("failed to parse jwt", w, r, err)
			return
		}
		if !token.Valid {
			unauthorized(w)
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil {
			authError("invalid jwt claims", w, r, err)
			return
		}
		if sub == "" {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authError(msg string, w http.ResponseWriter, r *http.Request, err error) {
	slog.Warn(msg,
		"error", err,
		"request_id", RequestIDFromContext(r.Context()),
		"method", r.Method,
		"url", r.URL.String(),
		"remote_addr", r.RemoteAddr,
	)
	unauthorized(w)
}

func unauthorized(w http.ResponseWriter) {
	_ = httpx.WriteJSON(w, http.StatusUnauthorized, httpx.ErrorResponse{Detail: "Unauthorized"})
}

func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(userIDKey).(string)
	return uid
}
