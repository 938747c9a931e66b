package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/marketplace-api/internal/api/metrics"
	"github.com/shopstack/marketplace-api/internal/core/domain"
	"github.com/shopstack/marketplace-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUser   = "user"
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// TokenVerifier checks a token's signature and expiry and returns the
// embedded subject and expiry claim.
type TokenVerifier interface {
	Verify(token string) (string, time.Time, error)
}

// UserResolver resolves a token subject to a live user record.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth gatekeeps protected routes. Per request, in order: extract the bearer
// token, check the blacklist (before signature verification, so a revoked
// token is rejected even if otherwise valid), verify signature and expiry,
// resolve the subject to a live user, and inject the identity into context.
// Every failure is a 401; no retries, no writes.
func Auth(verifier TokenVerifier, blacklist ports.TokenBlacklist, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return reject(http.StatusUnauthorized, "No token provided", "missing_token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				return reject(http.StatusUnauthorized, "Invalid token format", "bad_format")
			}
			token := parts[1]

			revoked, err := blacklist.Contains(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if revoked {
				return reject(http.StatusUnauthorized, "Token has been invalidated", "revoked")
			}

			subjectID, _, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return reject(http.StatusUnauthorized, "Token has expired", "expired")
				}
				return reject(http.StatusUnauthorized, "Invalid token", "invalid")
			}

			user, err := users.FindByID(c.Request().Context(), subjectID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return reject(http.StatusUnauthorized, "User not found", "unknown_user")
				}
				return err
			}

			c.Set(CtxUser, user)
			c.Set(CtxUserID, subjectID)
			c.Set(CtxRole, user.Role)

			return next(c)
		}
	}
}

func reject(code int, msg, reason string) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(code, msg)
}
