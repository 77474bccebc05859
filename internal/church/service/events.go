package service

import (
	"context"
	"errors"
	"strings"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/store"
	"github.com/newcreaturechurch/church-api/pkg/idx"
)

var (
	ErrInvalidEventType = errors.New("invalid_event_type")
	ErrEventFull        = errors.New("event_full")
	ErrAlreadyJoined    = errors.New("already_joined")
	ErrForbidden        = errors.New("forbidden")
)

type EventService struct {
	Store store.Store
}

// CreateEvent creates a calendar event organized by the actor.
func (s *EventService) CreateEvent(ctx context.Context, actor domain.Identity, e domain.Event) (domain.Event, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" || e.Date.IsZero() {
		return domain.Event{}, ErrMissingFields
	}
	if !e.Type.Valid() {
		return domain.Event{}, ErrInvalidEventType
	}
	if e.Recurring && !e.RecurringPattern.Valid() {
		return domain.Event{}, ErrInvalidEventType
	}
	if !e.Recurring {
		e.RecurringPattern = ""
	}

	e.ID = idx.New().String()
	e.Organizer = actor.UserID
	e.Attendees = nil

	if err := s.Store.Events().CreateEvent(ctx, e); err != nil {
		return domain.Event{}, err
	}
	return s.Store.Events().GetEventByID(ctx, e.ID)
}

// GetEvent returns one event. Hidden events are only visible to members.
func (s *EventService) GetEvent(ctx context.Context, authenticated bool, id string) (domain.Event, error) {
	e, err := s.Store.Events().GetEventByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	if !e.Public && !authenticated {
		return domain.Event{}, store.ErrNotFound
	}
	return e, nil
}

// ListEvents returns the calendar. Anonymous callers only see public events.
func (s *EventService) ListEvents(ctx context.Context, authenticated bool) ([]domain.Event, error) {
	return s.Store.Events().ListEvents(ctx, !authenticated)
}

// ListMyEvents returns events the actor has joined.
func (s *EventService) ListMyEvents(ctx context.Context, actor domain.Identity) ([]domain.Event, error) {
	return s.Store.Events().ListEventsForAttendee(ctx, actor.UserID)
}

// UpdateEvent replaces the mutable fields of an event. Only the organizer or
// an elevated role may touch it.
func (s *EventService) UpdateEvent(ctx context.Context, actor domain.Identity, e domain.Event) (domain.Event, error) {
	current, err := s.Store.Events().GetEventByID(ctx, e.ID)
	if err != nil {
		return domain.Event{}, err
	}
	if err := s.requireOrganizer(actor, current.Organizer); err != nil {
		return domain.Event{}, err
	}

	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" || e.Date.IsZero() {
		return domain.Event{}, ErrMissingFields
	}
	if !e.Type.Valid() {
		return domain.Event{}, ErrInvalidEventType
	}
	if e.Recurring && !e.RecurringPattern.Valid() {
		return domain.Event{}, ErrInvalidEventType
	}
	if !e.Recurring {
		e.RecurringPattern = ""
	}

	if err := s.Store.Events().UpdateEvent(ctx, e); err != nil {
		return domain.Event{}, err
	}
	return s.Store.Events().GetEventByID(ctx, e.ID)
}

// DeleteEvent removes an event and its attendee records.
func (s *EventService) DeleteEvent(ctx context.Context, actor domain.Identity, id string) error {
	current, err := s.Store.Events().GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOrganizer(actor, current.Organizer); err != nil {
		return err
	}
	return s.Store.Events().DeleteEvent(ctx, id)
}

// Join adds the actor to the attendee list, honoring the capacity cap. The
// capacity check and the insert run in one transaction so a burst of joins
// cannot overshoot.
func (s *EventService) Join(ctx context.Context, actor domain.Identity, eventID string) (domain.Event, error) {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		e, err := tx.Events().GetEventByID(ctx, eventID)
		if err != nil {
			return err
		}
		if e.HasAttendee(actor.UserID) {
			return ErrAlreadyJoined
		}
		if e.Full() {
			return ErrEventFull
		}
		if err := tx.Events().AddAttendee(ctx, eventID, actor.UserID); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyJoined
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return s.Store.Events().GetEventByID(ctx, eventID)
}

// Leave removes the actor from the attendee list. Leaving an event never
// fails for not being joined.
func (s *EventService) Leave(ctx context.Context, actor domain.Identity, eventID string) (domain.Event, error) {
	if _, err := s.Store.Events().GetEventByID(ctx, eventID); err != nil {
		return domain.Event{}, err
	}
	if err := s.Store.Events().RemoveAttendee(ctx, eventID, actor.UserID); err != nil {
		return domain.Event{}, err
	}
	return s.Store.Events().GetEventByID(ctx, eventID)
}

func (s *EventService) requireOrganizer(actor domain.Identity, organizer string) error {
	if actor.UserID == organizer {
		return nil
	}
	if actor.Role == domain.RoleAdmin || actor.Role == domain.RolePastor {
		return nil
	}
	return ErrForbidden
}
