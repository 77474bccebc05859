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

func seedEvent(t *testing.T, s *Store, organizer string, public bool) domain.Event {
	t.Helper()

	e := domain.Event{
		ID:        idx.New().String(),
		Title:     "Sunday Service",
		Date:      s.now().UTC().Add(48 * time.Hour),
		StartTime: "10:00",
		EndTime:   "11:30",
		Location:  "Main Hall",
		Type:      domain.EventService,
		Public:    public,
		Organizer: organizer,
	}
	require.NoError(t, s.Events().CreateEvent(context.Background(), e))
	return e
}

func TestEvents_PublicOnlyFilter(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	ctx := context.Background()

	seedEvent(t, s, u.ID, true)
	seedEvent(t, s, u.ID, false)

	all, err := s.Events().ListEvents(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	public, err := s.Events().ListEvents(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.True(t, public[0].Public)
}

func TestEvents_Attendees(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	other := seedUser(t, s, "other@example.com")
	e := seedEvent(t, s, u.ID, true)
	ctx := context.Background()

	require.NoError(t, s.Events().AddAttendee(ctx, e.ID, u.ID))
	require.NoError(t, s.Events().AddAttendee(ctx, e.ID, other.ID))

	// Joining twice is a conflict, not a second row.
	err := s.Events().AddAttendee(ctx, e.ID, u.ID)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.Events().GetEventByID(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, []string{u.ID, other.ID}, got.Attendees)

	mine, err := s.Events().ListEventsForAttendee(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, s.Events().RemoveAttendee(ctx, e.ID, other.ID))
	require.NoError(t, s.Events().RemoveAttendee(ctx, e.ID, other.ID)) // idempotent

	got, err = s.Events().GetEventByID(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, []string{u.ID}, got.Attendees)
}

func TestEvents_UpdateAndDelete(t *testing.T) {
	s, _ := newTestStore(t)
	u := seedUser(t, s, "grace@example.com")
	e := seedEvent(t, s, u.ID, true)
	ctx := context.Background()

	e.Title = "Combined Service"
	e.MaxAttendees = 120
	require.NoError(t, s.Events().UpdateEvent(ctx, e))

	got, err := s.Events().GetEventByID(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, "Combined Service", got.Title)
	require.Equal(t, 120, got.MaxAttendees)

	require.NoError(t, s.Events().DeleteEvent(ctx, e.ID))
	_, err = s.Events().GetEventByID(ctx, e.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
