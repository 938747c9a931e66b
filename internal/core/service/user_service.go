package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/marketplace-api/internal/core/domain"
	"github.com/shopstack/marketplace-api/internal/core/ports"
)

// UserService implements profile reads and mutations.
type UserService struct {
	users  ports.UserRepository
	hasher *PasswordHasher
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher *PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, log: log}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.NewValidationError("Invalid or missing ID")
	}
	return s.users.FindByID(ctx, id)
}

// UpdateUser replaces username and email and, when a new password is
// supplied, policy-checks and re-hashes it. The stored hash is otherwise
// left untouched.
func (s *UserService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" {
		return nil, domain.NewValidationError("Username and email are required")
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, domain.NewValidationError(msgInvalidEmail)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Email = in.Email
	if in.Password != "" {
		if err := ValidatePassword(in.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

// DeleteUser removes the account. Owned products are orphaned, not cascaded:
// they keep their user_id for audit.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
