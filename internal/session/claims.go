// ABOUTME: Best-effort decoding of the bearer token's JWT claims
// ABOUTME: Signatures are not verified; claims are for display only

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims found in the held token
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Claims decodes the held token. It returns nil when anonymous or when the token is not a JWT.
func (m *Manager) Claims() *Claims {
	return ParseClaims(m.Token())
}

// ParseClaims decodes token without verifying its signature
func ParseClaims(token string) *Claims {
	if token == "" {
		return nil
	}

	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return nil
	}

	c := &Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c
}
