package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/creatorhub/internal/model"
)

// ErrEmptyToken is returned by Inspect for an empty token string.
var ErrEmptyToken = errors.New("token is empty")

// Claims are the fields of a backend session token that the client displays.
type Claims struct {
	jwt.RegisteredClaims
	AccountID model.ID `json:"id,omitempty"`
	UserID    model.ID `json:"userId,omitempty"`
	Email     string   `json:"email,omitempty"`
	Role      string   `json:"role,omitempty"`
}

// Account returns the account identifier carried by the token: the subject,
// then userId, then id.
func (c Claims) Account() string {
	switch {
	case c.Subject != "":
		return c.Subject
	case c.UserID != "":
		return c.UserID.String()
	}
	return c.AccountID.String()
}

// Expiry returns the expiration time, or the zero time when the token
// carries none.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Expired reports whether the token has an expiry at or before now.
func (c Claims) Expired(now time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && !now.Before(exp)
}

// TTL returns the time left until expiry, 0 when there is no expiry or it
// already passed.
func (c Claims) TTL(now time.Time) time.Duration {
	exp := c.Expiry()
	if exp.IsZero() || !now.Before(exp) {
		return 0
	}
	return exp.Sub(now)
}

// Inspect decodes the claims of tokenString without verifying its
// signature. The client does not hold the signing key; the backend remains
// the only authority on validity.
func Inspect(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, ErrEmptyToken
	}

	claims := Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return Claims{}, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}
