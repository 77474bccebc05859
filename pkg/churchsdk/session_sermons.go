package churchsdk

import (
	"context"
	"net/http"
)

// ListSermons returns the full archive, including member-only sermons.
func (s *Session) ListSermons(ctx context.Context) ([]Sermon, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/sermons", nil)
	if err != nil {
		return nil, err
	}

	var out []Sermon
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSermon archives a sermon. Requires the admin or pastor role. The
// preacher defaults to the caller when left empty.
func (s *Session) CreateSermon(ctx context.Context, input SermonInput) (Sermon, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/sermons", input)
	if err != nil {
		return Sermon{}, err
	}

	var out Sermon
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return Sermon{}, err
	}
	return out, nil
}

// UpdateSermon replaces an archived sermon's details. Requires the admin or
// pastor role.
func (s *Session) UpdateSermon(ctx context.Context, id string, input SermonInput) (Sermon, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/sermons/"+id, input)
	if err != nil {
		return Sermon{}, err
	}

	var out Sermon
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Sermon{}, err
	}
	return out, nil
}

// DeleteSermon removes a sermon from the archive. Requires the admin or
// pastor role.
func (s *Session) DeleteSermon(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/sermons/"+id, nil)
	if err != nil {
		return err
	}
	return drainJSON(resp, http.StatusOK)
}
