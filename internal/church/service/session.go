package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/store"
	"github.com/newcreaturechurch/church-api/pkg/cryptox"
	"github.com/newcreaturechurch/church-api/pkg/idx"
	"github.com/newcreaturechurch/church-api/pkg/jwtx"
	"github.com/newcreaturechurch/church-api/pkg/slogx"
)

var (
	ErrMissingFields      = errors.New("missing_fields")
	ErrMissingCredentials = errors.New("missing_credentials")
	ErrEmailExists        = errors.New("email_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInactiveAccount    = errors.New("inactive_account")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrRefreshExpired     = errors.New("refresh_token_expired")
	ErrTokenExpired       = errors.New("token_expired")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrUserNotFound       = errors.New("user_not_found")
)

// SessionService implements registration, login, and the refresh-token
// session lifecycle. Refresh tokens are signed JWTs, but they are also
// recorded server-side by fingerprint so they can be revoked and are
// single-use: every refresh consumes the presented token and mints a
// replacement.
type SessionService struct {
	Codec *jwtx.Codec
	Store store.Store
}

// Register creates a member account and immediately opens a session for it.
// New accounts always start with the member role; promotion is a separate,
// admin-driven operation.
func (s *SessionService) Register(
	ctx context.Context,
	email, password, firstName, lastName, phone string,
) (domain.User, domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if email == "" || password == "" || firstName == "" || lastName == "" {
		return domain.User{}, domain.TokenPair{}, ErrMissingFields
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	now := s.Codec.Now()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        strings.TrimSpace(phone),
		Role:         domain.RoleMember,
		Active:       true,
		JoinDate:     now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, domain.TokenPair{}, ErrEmailExists
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	pair, err := s.openSession(ctx, s.Store.RefreshTokens(), user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, pair, nil
}

// Login verifies credentials and opens a new session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.User, domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return domain.User{}, domain.TokenPair{}, ErrMissingCredentials
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash verification so the miss costs the same as a
			// wrong password.
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash)
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("user_id", user.ID))
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	if !user.Active {
		return domain.User{}, domain.TokenPair{}, ErrInactiveAccount
	}

	pair, err := s.openSession(ctx, s.Store.RefreshTokens(), user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	l.Info("user logged in", slog.String("user_id", user.ID))
	return user, pair, nil
}

// Refresh rotates a session: the presented refresh token is verified,
// consumed, and replaced by a fresh pair. The consume is a conditional
// revoke inside one transaction, so a replayed token loses the race and
// gets nothing.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	claims, err := s.Codec.Verify(jwtx.KindRefresh, refreshToken)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.TokenPair{}, ErrRefreshExpired
		}
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	fingerprint := cryptox.FingerprintToken(refreshToken)

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// The account behind the claims is re-checked at rotation time so
		// deactivation and deletion cut sessions short of the token's natural
		// expiry. Both surface as a missing user.
		user, err := tx.Users().GetUserByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !user.Active {
			return ErrUserNotFound
		}

		// Existence check scoped to the claimed owner; revoked, expired, and
		// unknown all miss the same way.
		if _, err := tx.RefreshTokens().FindValid(ctx, claims.UserID, fingerprint); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		won, err := tx.RefreshTokens().Consume(ctx, fingerprint)
		if err != nil {
			return err
		}
		if !won {
			// A concurrent refresh got here first.
			return ErrInvalidRefresh
		}

		pair, err = s.openSession(ctx, tx.RefreshTokens(), user)
		return err
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("session refreshed", slog.String("user_id", claims.UserID))
	return pair, nil
}

// Logout revokes the presented refresh token. It never reports whether the
// token was known; logout always succeeds from the caller's side.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}
	return s.Store.RefreshTokens().Revoke(ctx, cryptox.FingerprintToken(refreshToken))
}

// LogoutEverywhere revokes every live session for the user.
func (s *SessionService) LogoutEverywhere(ctx context.Context, userID string) error {
	return s.Store.RefreshTokens().RevokeAllForUser(ctx, userID)
}

// VerifyAccess validates an access token and returns the live account behind
// it. The account is re-read on every call so deactivation and deletion take
// effect before the token's natural expiry.
func (s *SessionService) VerifyAccess(ctx context.Context, accessToken string) (domain.User, error) {
	claims, err := s.Codec.Verify(jwtx.KindAccess, accessToken)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.User{}, ErrTokenExpired
		}
		return domain.User{}, ErrInvalidToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	if !user.Active {
		return domain.User{}, ErrInactiveAccount
	}

	return user, nil
}

// openSession issues a fresh token pair and records the refresh half by
// fingerprint in the given repo (direct or transactional).
func (s *SessionService) openSession(ctx context.Context, repo store.RefreshTokens, user domain.User) (domain.TokenPair, error) {
	pair, err := s.Codec.IssuePair(jwtx.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role.String(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	fingerprint := cryptox.FingerprintToken(pair.RefreshToken)
	if _, err := repo.Create(ctx, user.ID, fingerprint, s.Codec.TTL(jwtx.KindRefresh)); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int(s.Codec.TTL(jwtx.KindAccess).Seconds()),
	}, nil
}
