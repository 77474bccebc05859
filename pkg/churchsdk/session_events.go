package churchsdk

import (
	"context"
	"net/http"
)

// ListEvents returns the full calendar, including member-only events.
func (s *Session) ListEvents(ctx context.Context) ([]Event, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/events", nil)
	if err != nil {
		return nil, err
	}

	var out []Event
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// MyEvents returns the events the member has joined.
func (s *Session) MyEvents(ctx context.Context) ([]Event, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/events/mine", nil)
	if err != nil {
		return nil, err
	}

	var out []Event
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvent returns one event, including member-only events.
func (s *Session) GetEvent(ctx context.Context, id string) (Event, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/events/"+id, nil)
	if err != nil {
		return Event{}, err
	}

	var out Event
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Event{}, err
	}
	return out, nil
}

// CreateEvent creates a calendar event. Requires the admin or pastor role.
func (s *Session) CreateEvent(ctx context.Context, input EventInput) (Event, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/events", input)
	if err != nil {
		return Event{}, err
	}

	var out Event
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return Event{}, err
	}
	return out, nil
}

// UpdateEvent replaces an event's details. Requires the admin or pastor role.
func (s *Session) UpdateEvent(ctx context.Context, id string, input EventInput) (Event, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/events/"+id, input)
	if err != nil {
		return Event{}, err
	}

	var out Event
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Event{}, err
	}
	return out, nil
}

// DeleteEvent removes an event. Requires the admin or pastor role.
func (s *Session) DeleteEvent(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/events/"+id, nil)
	if err != nil {
		return err
	}
	return drainJSON(resp, http.StatusOK)
}

// JoinEvent registers the member as an attendee and returns the updated
// event. Fails with EVENT_FULL or ALREADY_JOINED.
func (s *Session) JoinEvent(ctx context.Context, id string) (Event, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/events/"+id+"/join", nil)
	if err != nil {
		return Event{}, err
	}

	var out Event
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Event{}, err
	}
	return out, nil
}

// LeaveEvent removes the member from the attendee list. Leaving an event the
// member never joined is not an error.
func (s *Session) LeaveEvent(ctx context.Context, id string) (Event, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/events/"+id+"/leave", nil)
	if err != nil {
		return Event{}, err
	}

	var out Event
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Event{}, err
	}
	return out, nil
}
