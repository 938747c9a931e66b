package ports

import (
	"context"

	"github.com/shopstack/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Username and email uniqueness is enforced by the store's indexes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// AttachProduct and DetachProduct maintain the user's owned-product
	// back-references.
	AttachProduct(ctx context.Context, userID, productID string) error
	DetachProduct(ctx context.Context, userID, productID string) error
}
