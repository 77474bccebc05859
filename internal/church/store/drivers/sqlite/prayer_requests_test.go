package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/store"
	"github.com/newcreaturechurch/church-api/pkg/idx"
)

func seedPrayerRequest(t *testing.T, s *Store, requester string, expiresAt *time.Time) domain.PrayerRequest {
	t.Helper()

	p := domain.PrayerRequest{
		ID:        idx.New().String(),
		Requester: requester,
		Title:     "Healing",
		Category:  domain.PrayerPersonal,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, s.PrayerRequests().CreatePrayerRequest(context.Background(), p))
	return p
}

func TestPrayerRequests_SupportersCountOnce(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	other := seedUser(t, s, "other@example.com")
	p := seedPrayerRequest(t, s, u.ID, nil)
	ctx := context.Background()

	first, err := s.PrayerRequests().AddSupporter(ctx, p.ID, other.ID)
	require.NoError(t, err)
	require.True(t, first)

	again, err := s.PrayerRequests().AddSupporter(ctx, p.ID, other.ID)
	require.NoError(t, err)
	require.False(t, again)

	got, err := s.PrayerRequests().GetPrayerRequestByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.PrayerCount)
	require.Equal(t, []string{other.ID}, got.PrayedBy)
}

func TestPrayerRequests_MarkAnswered(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	p := seedPrayerRequest(t, s, u.ID, nil)
	ctx := context.Background()

	require.NoError(t, s.PrayerRequests().MarkAnswered(ctx, p.ID, "Fully recovered"))

	got, err := s.PrayerRequests().GetPrayerRequestByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, got.Answered)
	require.Equal(t, "Fully recovered", got.AnswerNotes)
	require.NotNil(t, got.AnsweredAt)
}

func TestPrayerRequests_ExpiredHiddenAndSwept(t *testing.T) {
	s, clock := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	soon := clock.Add(time.Hour)
	seedPrayerRequest(t, s, u.ID, &soon)
	keeper := seedPrayerRequest(t, s, u.ID, nil)

	*clock = clock.Add(2 * time.Hour)

	listed, err := s.PrayerRequests().ListPrayerRequests(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, keeper.ID, listed[0].ID)

	n, err := s.PrayerRequests().DeleteExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestPrayerRequests_UrgentListedFirst(t *testing.T) {
	s, clock := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	calm := seedPrayerRequest(t, s, u.ID, nil)
	*clock = clock.Add(time.Minute)

	urgent := domain.PrayerRequest{
		ID:        idx.New().String(),
		Requester: u.ID,
		Title:     "Surgery tomorrow",
		Category:  domain.PrayerFamily,
		Urgent:    true,
	}
	require.NoError(t, s.PrayerRequests().CreatePrayerRequest(ctx, urgent))

	listed, err := s.PrayerRequests().ListPrayerRequests(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, urgent.ID, listed[0].ID)
	require.Equal(t, calm.ID, listed[1].ID)
}

func TestPrayerRequests_ListForRequester(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	other := seedUser(t, s, "other@example.com")
	ctx := context.Background()

	seedPrayerRequest(t, s, u.ID, nil)
	seedPrayerRequest(t, s, other.ID, nil)

	mine, err := s.PrayerRequests().ListPrayerRequestsForRequester(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, u.ID, mine[0].Requester)
}

func TestPrayerRequests_Delete(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	p := seedPrayerRequest(t, s, u.ID, nil)
	ctx := context.Background()

	require.NoError(t, s.PrayerRequests().DeletePrayerRequest(ctx, p.ID))
	_, err := s.PrayerRequests().GetPrayerRequestByID(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
