package client

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is what a logged-in caller keeps between requests. It is a plain
// value: persist it however you like and hand it back with SetSession.
type Session struct {
	Token        string    `json:"token"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Valid reports whether the session can still authenticate requests at now.
// A zero ExpiresAt means the expiry is unknown and only the token is checked.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server stays the authority on whether the token is accepted.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}
