package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind selects which of the two token categories an operation applies to.
// Access and refresh tokens are signed with independent secrets so that a
// compromise of one category never compromises the other.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	// ErrNoSecret reports that the signing secret for the requested kind was
	// never configured. This is fatal misconfiguration, not a bad token.
	ErrNoSecret = errors.New("jwtx: signing secret not configured")

	// ErrExpired reports a token whose embedded expiry has passed.
	ErrExpired = errors.New("jwtx: token expired")

	// ErrMalformed reports a token that failed signature, issuer/audience,
	// or required-claim checks.
	ErrMalformed = errors.New("jwtx: malformed token")

	// ErrVerification reports any other codec-level verification failure.
	ErrVerification = errors.New("jwtx: token verification failed")
)

// Pair is an access/refresh token pair minted together for one identity.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Config carries the secrets and lifetimes for a Codec. Secrets come from
// application configuration at startup; the codec never reads ambient state.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte

	// AccessTTL and RefreshTTL default to DefaultAccessTokenTTL and
	// DefaultRefreshTokenTTL when zero.
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Codec mints and verifies the signed claims tokens (HS256) used across the
// service. It is pure: no I/O, deterministic given secrets and clock.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewCodec(cfg Config) *Codec {
	c := &Codec{
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           cfg.Now,
	}
	if c.accessTTL <= 0 {
		c.accessTTL = DefaultAccessTokenTTL
	}
	if c.refreshTTL <= 0 {
		c.refreshTTL = DefaultRefreshTokenTTL
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Now returns the codec's current time. Exposed so callers share the same
// clock the codec signs with.
func (c *Codec) Now() time.Time {
	return c.now()
}

// TTL returns the configured lifetime for the given kind.
func (c *Codec) TTL(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

func (c *Codec) secret(kind Kind) ([]byte, error) {
	var s []byte
	switch kind {
	case KindAccess:
		s = c.accessSecret
	case KindRefresh:
		s = c.refreshSecret
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrNoSecret, kind)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSecret, kind)
	}
	return s, nil
}

// Issue signs a token of the given kind for the identity. Expiry is the
// kind's fixed lifetime from now; issuer and audience are the service
// constants.
func (c *Codec) Issue(kind Kind, id Identity) (string, error) {
	secret, err := c.secret(kind)
	if err != nil {
		return "", err
	}

	claims := newClaims(id, c.TTL(kind), c.now())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: signing %s token: %w", kind, err)
	}
	return signed, nil
}

// IssuePair mints an access and a refresh token for the same identity.
func (c *Codec) IssuePair(id Identity) (Pair, error) {
	access, err := c.Issue(KindAccess, id)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := c.Issue(KindRefresh, id)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks signature, expiry, issuer/audience, and required claims for a
// token of the given kind. A token signed with the other kind's secret fails
// here with ErrMalformed; the two categories are never interchangeable.
func (c *Codec) Verify(kind Kind, token string) (Claims, error) {
	secret, err := c.secret(kind)
	if err != nil {
		return Claims{}, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	_, err = parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.validateRequired(); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// Decode parses the claims without checking signature or expiry. Inspection
// only; never use the result for an authorization decision.
func (c *Codec) Decode(token string) (Claims, bool) {
	var claims Claims
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return Claims{}, false
	}
	return claims, true
}

// IsExpired reports whether the token's embedded expiry has passed. Tokens
// that cannot be decoded or carry no expiry count as expired.
func (c *Codec) IsExpired(token string) bool {
	claims, ok := c.Decode(token)
	if !ok || claims.ExpiresAt == nil {
		return true
	}
	return c.now().After(claims.ExpiresAt.Time)
}

// ExpiryAt returns the token's embedded expiry, if it can be decoded.
func (c *Codec) ExpiryAt(token string) (time.Time, bool) {
	claims, ok := c.Decode(token)
	if !ok || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	default:
		return fmt.Errorf("%w: %v", ErrVerification, err)
	}
}
