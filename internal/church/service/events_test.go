package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/store"
)

func seedMember(t *testing.T, s store.Store, email string, role domain.Role) domain.Identity {
	t.Helper()

	u := domain.User{
		ID:           email, // ids only need to be unique here
		Email:        email,
		PasswordHash: "$argon2id$fake",
		FirstName:    "Test",
		LastName:     "Member",
		Role:         role,
		Active:       true,
		JoinDate:     time.Now(),
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u.Identity()
}

func validEvent() domain.Event {
	return domain.Event{
		Title:    "Sunday Service",
		Date:     time.Now().Add(48 * time.Hour),
		Type:     domain.EventService,
		Location: "Main Hall",
		Public:   true,
	}
}

func TestEvents_CreateValidation(t *testing.T) {
	st := newTestStore(t)
	svc := &EventService{Store: st}
	actor := seedMember(t, st, "organizer@example.com", domain.RoleMember)
	ctx := context.Background()

	e := validEvent()
	e.Title = "  "
	_, err := svc.CreateEvent(ctx, actor, e)
	require.ErrorIs(t, err, ErrMissingFields)

	e = validEvent()
	e.Type = "picnic"
	_, err = svc.CreateEvent(ctx, actor, e)
	require.ErrorIs(t, err, ErrInvalidEventType)

	e = validEvent()
	e.Recurring = true
	_, err = svc.CreateEvent(ctx, actor, e)
	require.ErrorIs(t, err, ErrInvalidEventType)

	e = validEvent()
	created, err := svc.CreateEvent(ctx, actor, e)
	require.NoError(t, err)
	require.Equal(t, actor.UserID, created.Organizer)
	require.NotEmpty(t, created.ID)
}

func TestEvents_JoinRespectsCapacity(t *testing.T) {
	st := newTestStore(t)
	svc := &EventService{Store: st}
	organizer := seedMember(t, st, "organizer@example.com", domain.RoleMember)
	first := seedMember(t, st, "first@example.com", domain.RoleMember)
	second := seedMember(t, st, "second@example.com", domain.RoleMember)
	ctx := context.Background()

	e := validEvent()
	e.MaxAttendees = 1
	created, err := svc.CreateEvent(ctx, organizer, e)
	require.NoError(t, err)

	joined, err := svc.Join(ctx, first, created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{first.UserID}, joined.Attendees)

	_, err = svc.Join(ctx, first, created.ID)
	require.ErrorIs(t, err, ErrAlreadyJoined)

	_, err = svc.Join(ctx, second, created.ID)
	require.ErrorIs(t, err, ErrEventFull)

	// Leaving frees the seat.
	_, err = svc.Leave(ctx, first, created.ID)
	require.NoError(t, err)
	_, err = svc.Join(ctx, second, created.ID)
	require.NoError(t, err)
}

func TestEvents_OnlyOrganizerOrElevatedMayMutate(t *testing.T) {
	st := newTestStore(t)
	svc := &EventService{Store: st}
	organizer := seedMember(t, st, "organizer@example.com", domain.RoleMember)
	stranger := seedMember(t, st, "stranger@example.com", domain.RoleMember)
	pastor := seedMember(t, st, "pastor@example.com", domain.RolePastor)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, organizer, validEvent())
	require.NoError(t, err)

	created.Title = "Renamed"
	_, err = svc.UpdateEvent(ctx, stranger, created)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateEvent(ctx, pastor, created)
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteEvent(ctx, stranger, created.ID), ErrForbidden)
	require.NoError(t, svc.DeleteEvent(ctx, organizer, created.ID))
}

func TestEvents_AnonymousSeesPublicOnly(t *testing.T) {
	st := newTestStore(t)
	svc := &EventService{Store: st}
	organizer := seedMember(t, st, "organizer@example.com", domain.RoleMember)
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, organizer, validEvent())
	require.NoError(t, err)

	hidden := validEvent()
	hidden.Public = false
	hiddenCreated, err := svc.CreateEvent(ctx, organizer, hidden)
	require.NoError(t, err)

	anon, err := svc.ListEvents(ctx, false)
	require.NoError(t, err)
	require.Len(t, anon, 1)

	members, err := svc.ListEvents(ctx, true)
	require.NoError(t, err)
	require.Len(t, members, 2)

	// A hidden event is indistinguishable from a missing one for anonymous
	// callers.
	_, err = svc.GetEvent(ctx, false, hiddenCreated.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.GetEvent(ctx, true, hiddenCreated.ID)
	require.NoError(t, err)
}
