package service

import (
	"context"
	"strings"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// UpdateProfile applies the provided profile fields; a field that is omitted
// or blank keeps its stored value. Email, role and active status are not
// reachable from here.
func (s *UserService) UpdateProfile(ctx context.Context, userID, firstName, lastName, phone string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if v := strings.TrimSpace(firstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(lastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(phone); v != "" {
		user.Phone = v
	}

	if err := s.Store.Users().UpdateProfile(ctx, userID, user.FirstName, user.LastName, user.Phone); err != nil {
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}

// Deactivate disables the account and revokes every live session, so the
// lockout takes effect on the next gate check rather than at token expiry.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	if err := s.Store.Users().SetActive(ctx, userID, false); err != nil {
		return err
	}
	return s.Store.RefreshTokens().RevokeAllForUser(ctx, userID)
}

// Reactivate re-enables a previously deactivated account.
func (s *UserService) Reactivate(ctx context.Context, userID string) error {
	return s.Store.Users().SetActive(ctx, userID, true)
}
