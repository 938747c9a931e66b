package ports

import (
	"context"

	"github.com/shopstack/marketplace-api/internal/core/domain"
)

// TokenBlacklist records tokens revoked before their natural expiry.
// Entries are append-only; the store purges them after ExpiresAt.
type TokenBlacklist interface {
	Add(ctx context.Context, entry *domain.BlacklistedToken) error
	Contains(ctx context.Context, token string) (bool, error)
}
