// Package auth validates staff bearer tokens for the shop API endpoints.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	request "pawdesk/pkg/platform/middleware/request"
)

// StaffClaims are the claims the shop app issues to staff devices.
type StaffClaims struct {
	StaffID string
	Name    string
}

// Validator verifies bearer tokens. The HMAC implementation below is the
// production one; tests substitute fakes.
type Validator interface {
	ValidateToken(tokenString string) (*StaffClaims, error)
}

type contextKeyStaffID struct{}

// ContextKeyStaffID is exported for use in handlers.
var ContextKeyStaffID = contextKeyStaffID{}

// GetStaffID retrieves the authenticated staff ID from the context.
func GetStaffID(ctx context.Context) string {
	staffID, ok := ctx.Value(ContextKeyStaffID).(string)
	if !ok {
		return ""
	}
	return staffID
}

// HMACValidator verifies HS256 tokens signed with the shared shop key.
type HMACValidator struct {
	key []byte
}

func NewHMACValidator(key string) *HMACValidator {
	return &HMACValidator{key: []byte(key)}
}

func (v *HMACValidator) ValidateToken(tokenString string) (*StaffClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	name, _ := claims["name"].(string)
	return &StaffClaims{StaffID: sub, Name: name}, nil
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth rejects requests without a valid staff bearer token and puts
// the staff ID on the context.
func RequireAuth(validator Validator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Bearer token required")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", request.GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyStaffID, claims.StaffID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
