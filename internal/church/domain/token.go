package domain

import "time"

// TokenPair is what the auth endpoints return: a short-lived access token and
// a long-lived revocable refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	// ExpiresIn is the access token lifetime in seconds. Clients use it to
	// schedule a refresh ahead of expiry.
	ExpiresIn int `json:"expiresIn"`
}

// RefreshToken models the stored refresh token record. The record makes
// refresh tokens revocable server-side, independent of the token's own
// embedded expiry.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
