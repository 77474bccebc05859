package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/newcreaturechurch/church-api/internal/church/store"
)

func TestRefreshTokens_CreateAndFindValid(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	rec, err := s.RefreshTokens().Create(ctx, u.ID, "hash-1", 7*24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.False(t, rec.Revoked)

	got, err := s.RefreshTokens().FindValid(ctx, u.ID, "hash-1")
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
}

func TestRefreshTokens_FindValidIsConjunctive(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	other := seedUser(t, s, "other@example.com")
	ctx := context.Background()

	_, err := s.RefreshTokens().Create(ctx, u.ID, "hash-1", 7*24*time.Hour)
	require.NoError(t, err)

	// Wrong owner and wrong hash both miss identically.
	_, err = s.RefreshTokens().FindValid(ctx, other.ID, "hash-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.RefreshTokens().FindValid(ctx, u.ID, "hash-2")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshTokens_ExpiryIsEnforced(t *testing.T) {
	s, clock := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	_, err := s.RefreshTokens().Create(ctx, u.ID, "hash-1", 7*24*time.Hour)
	require.NoError(t, err)

	*clock = clock.Add(7*24*time.Hour + time.Second)

	_, err = s.RefreshTokens().FindValid(ctx, u.ID, "hash-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshTokens_RevokeIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	_, err := s.RefreshTokens().Create(ctx, u.ID, "hash-1", 7*24*time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.RefreshTokens().Revoke(ctx, "hash-1"))
	require.NoError(t, s.RefreshTokens().Revoke(ctx, "hash-1"))
	require.NoError(t, s.RefreshTokens().Revoke(ctx, "never-existed"))

	_, err = s.RefreshTokens().FindValid(ctx, u.ID, "hash-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshTokens_ConsumeWinsExactlyOnce(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	_, err := s.RefreshTokens().Create(ctx, u.ID, "hash-1", 7*24*time.Hour)
	require.NoError(t, err)

	won, err := s.RefreshTokens().Consume(ctx, "hash-1")
	require.NoError(t, err)
	require.True(t, won)

	// Replays lose.
	won, err = s.RefreshTokens().Consume(ctx, "hash-1")
	require.NoError(t, err)
	require.False(t, won)
}

func TestRefreshTokens_ConsumeExpiredLoses(t *testing.T) {
	s, clock := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	_, err := s.RefreshTokens().Create(ctx, u.ID, "hash-1", time.Hour)
	require.NoError(t, err)

	*clock = clock.Add(2 * time.Hour)

	won, err := s.RefreshTokens().Consume(ctx, "hash-1")
	require.NoError(t, err)
	require.False(t, won)
}

func TestRefreshTokens_DuplicateHashRejected(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	_, err := s.RefreshTokens().Create(ctx, u.ID, "hash-1", 7*24*time.Hour)
	require.NoError(t, err)

	_, err = s.RefreshTokens().Create(ctx, u.ID, "hash-1", 7*24*time.Hour)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestRefreshTokens_RevokeAllForUser(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	other := seedUser(t, s, "other@example.com")
	ctx := context.Background()

	_, err := s.RefreshTokens().Create(ctx, u.ID, "hash-1", 7*24*time.Hour)
	require.NoError(t, err)
	_, err = s.RefreshTokens().Create(ctx, u.ID, "hash-2", 7*24*time.Hour)
	require.NoError(t, err)
	_, err = s.RefreshTokens().Create(ctx, other.ID, "hash-3", 7*24*time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.RefreshTokens().RevokeAllForUser(ctx, u.ID))

	_, err = s.RefreshTokens().FindValid(ctx, u.ID, "hash-1")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.RefreshTokens().FindValid(ctx, u.ID, "hash-2")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Other accounts are untouched.
	_, err = s.RefreshTokens().FindValid(ctx, other.ID, "hash-3")
	require.NoError(t, err)
}

func TestRefreshTokens_DeleteExpired(t *testing.T) {
	s, clock := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	_, err := s.RefreshTokens().Create(ctx, u.ID, "short", time.Hour)
	require.NoError(t, err)
	_, err = s.RefreshTokens().Create(ctx, u.ID, "long", 7*24*time.Hour)
	require.NoError(t, err)

	*clock = clock.Add(2 * time.Hour)

	n, err := s.RefreshTokens().DeleteExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	// The long-lived one survives the sweep.
	_, err = s.RefreshTokens().FindValid(ctx, u.ID, "long")
	require.NoError(t, err)
}

func TestRefreshTokens_ConsumeInsideTransaction(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	_, err := s.RefreshTokens().Create(ctx, u.ID, "hash-1", 7*24*time.Hour)
	require.NoError(t, err)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		won, err := tx.RefreshTokens().Consume(ctx, "hash-1")
		require.NoError(t, err)
		require.True(t, won)

		_, err = tx.RefreshTokens().Create(ctx, u.ID, "hash-2", 7*24*time.Hour)
		return err
	})
	require.NoError(t, err)

	_, err = s.RefreshTokens().FindValid(ctx, u.ID, "hash-1")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.RefreshTokens().FindValid(ctx, u.ID, "hash-2")
	require.NoError(t, err)
}
