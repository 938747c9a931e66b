package domain

import (
	"errors"
	"time"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenRevoked = errors.New("token has been invalidated")
)

// BlacklistedToken is a revocation record written on logout. ExpiresAt is
// copied from the token's own expiry claim so the store can discard the row
// once the token would have expired on its own.
type BlacklistedToken struct {
	Token     string
	ExpiresAt time.Time
}
