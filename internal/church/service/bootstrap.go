package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/store"
	"github.com/newcreaturechurch/church-api/pkg/cryptox"
	"github.com/newcreaturechurch/church-api/pkg/idx"
	"github.com/newcreaturechurch/church-api/pkg/slogx"
)

var ErrBootstrapIncomplete = errors.New("bootstrap needs both email and password")

// BootstrapService seeds the first staff account. Registration only ever
// creates members, so without this there is no path to an admin on a fresh
// database.
type BootstrapService struct {
	Store store.Store
}

// EnsureAdmin creates an active admin account with the given credentials
// unless one with that email already exists. Safe to run on every startup.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, email, password string) error {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return ErrBootstrapIncomplete
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	admin := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Church",
		LastName:     "Admin",
		Role:         domain.RoleAdmin,
		Active:       true,
		JoinDate:     time.Now().UTC(),
	}

	if err := s.Store.Users().CreateUser(ctx, admin); err != nil {
		// A concurrent startup may have won the race.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	l.Info("bootstrap admin created", slog.String("user_id", admin.ID))
	return nil
}
