package ports

import (
	"context"

	"github.com/shopstack/marketplace-api/internal/core/domain"
)

// UpdateUserInput carries the mutable profile fields. Password is optional;
// when non-empty it is policy-checked and re-hashed before persisting.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
}

type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
