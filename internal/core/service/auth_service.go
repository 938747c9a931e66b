package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstack/marketplace-api/internal/core/domain"
	"github.com/shopstack/marketplace-api/internal/core/ports"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	passwordMinLength = 8
	passwordSymbols   = "@$!%*?&"

	msgFieldsRequired = "All fields are required"
	msgInvalidEmail   = "Invalid email format"
	msgPasswordPolicy = "Password must be at least 8 characters long and contain at least one letter, one digit, and one special character"
)

// ValidatePassword enforces the composite password policy: at least 8
// characters, one letter, one digit, one symbol from the allowed set, and no
// characters outside letters, digits, and that set.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLength {
		return domain.NewValidationError(msgPasswordPolicy)
	}
	var letter, digit, symbol bool
	for _, r := range password {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return domain.NewValidationError(msgPasswordPolicy)
		}
	}
	if !letter || !digit || !symbol {
		return domain.NewValidationError(msgPasswordPolicy)
	}
	return nil
}

// AuthService orchestrates credential handling, token issuance, and
// logout-via-blacklist.
type AuthService struct {
	users     ports.UserRepository
	blacklist ports.TokenBlacklist
	hasher    *PasswordHasher
	tokens    *TokenService
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	blacklist ports.TokenBlacklist,
	hasher *PasswordHasher,
	tokens *TokenService,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		blacklist: blacklist,
		hasher:    hasher,
		tokens:    tokens,
		log:       log,
	}
}

// Signup validates the payload eagerly, checks email uniqueness, persists the
// hashed credentials, and issues a token for the new subject.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	if username == "" || email == "" || password == "" {
		return "", nil, domain.NewValidationError(msgFieldsRequired)
	}
	if !emailPattern.MatchString(email) {
		return "", nil, domain.NewValidationError(msgInvalidEmail)
	}
	if err := ValidatePassword(password); err != nil {
		return "", nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return token, created, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password both yield ErrInvalidCredentials so callers cannot enumerate
// registered accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError(msgFieldsRequired)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// Logout verifies the token to recover its expiry claim and records it in the
// blacklist carrying that expiry, so the store can purge the entry once the
// token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	_, expiresAt, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}

	if err := s.blacklist.Add(ctx, &domain.BlacklistedToken{Token: token, ExpiresAt: expiresAt}); err != nil {
		return err
	}

	s.log.Info().Time("expires_at", expiresAt).Msg("token blacklisted")
	return nil
}
