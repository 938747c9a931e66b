package ports

import (
	"context"

	"github.com/shopstack/marketplace-api/internal/core/domain"
)

// AuthService implements signup, login, and logout-via-blacklist.
type AuthService interface {
	// Signup validates the payload, persists the new account, and returns a
	// freshly issued token (signup doubles as login).
	Signup(ctx context.Context, username, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout verifies the token and records it in the blacklist until its
	// natural expiry.
	Logout(ctx context.Context, token string) error
}
