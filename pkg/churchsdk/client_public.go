package churchsdk

import (
	"context"
	"net/http"
)

// Liveness checks that the service process is up.
func (c *Client) Liveness(ctx context.Context) (Health, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return Health{}, err
	}

	var out Health
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Health{}, err
	}
	return out, nil
}

// Readiness checks that the service can reach its database.
func (c *Client) Readiness(ctx context.Context) (Health, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return Health{}, err
	}

	var out Health
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Health{}, err
	}
	return out, nil
}

// ListEvents returns the public church calendar. Authenticated callers should
// use Session.ListEvents to also see member-only events.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/events", nil)
	if err != nil {
		return nil, err
	}

	var out []Event
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvent returns one public event.
func (c *Client) GetEvent(ctx context.Context, id string) (Event, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/events/"+id, nil)
	if err != nil {
		return Event{}, err
	}

	var out Event
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Event{}, err
	}
	return out, nil
}

// ListSermons returns the public sermon archive, newest first.
func (c *Client) ListSermons(ctx context.Context) ([]Sermon, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/sermons", nil)
	if err != nil {
		return nil, err
	}

	var out []Sermon
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSermon returns one public sermon.
func (c *Client) GetSermon(ctx context.Context, id string) (Sermon, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/sermons/"+id, nil)
	if err != nil {
		return Sermon{}, err
	}

	var out Sermon
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Sermon{}, err
	}
	return out, nil
}

// RecordSermonView counts a playback of a public sermon and returns the
// updated record.
func (c *Client) RecordSermonView(ctx context.Context, id string) (Sermon, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/sermons/"+id+"/view", nil)
	if err != nil {
		return Sermon{}, err
	}

	var out Sermon
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Sermon{}, err
	}
	return out, nil
}
