package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for the access/refresh pair. Access tokens are
// short-lived since they cannot be revoked; refresh tokens are long-lived but
// revocable server-side.
const (
	DefaultAccessTokenTTL  = 1 * time.Hour
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Issuer and Audience are fixed for every token this service mints. Tokens
// minted for a different service or purpose will fail verification on these.
const (
	Issuer   = "new-creature-church"
	Audience = "church-members"
)

// Role names embedded in token claims. Kept as strings in the claims payload;
// Verify rejects anything outside this set.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
	RolePastor = "pastor"
)

// ValidRole reports whether role is one of the three enumerated roles.
func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleAdmin, RolePastor:
		return true
	}
	return false
}

// Identity is the subject material embedded into every token.
type Identity struct {
	UserID    string
	Email     string
	Role      string
	FirstName string
	LastName  string
}

// Claims is the signed payload shared by access and refresh tokens. The two
// kinds differ only in signing secret and lifetime, never in shape.
type Claims struct {
	jwt.RegisteredClaims

	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Identity projects the claims back into the subject material they were
// minted from.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:    c.UserID,
		Email:     c.Email,
		Role:      c.Role,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}
}

// validateRequired enforces that every identity claim is present and the role
// is one of the enumerated values. A token missing any of these is malformed
// regardless of its signature.
func (c *Claims) validateRequired() error {
	if c.UserID == "" || c.Email == "" || c.FirstName == "" || c.LastName == "" {
		return ErrMalformed
	}
	if !ValidRole(c.Role) {
		return ErrMalformed
	}
	return nil
}

func newClaims(id Identity, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    id.UserID,
		Email:     id.Email,
		Role:      id.Role,
		FirstName: id.FirstName,
		LastName:  id.LastName,
	}
}
