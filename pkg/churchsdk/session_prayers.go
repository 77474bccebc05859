package churchsdk

import (
	"context"
	"net/http"
)

// ListPrayerRequests returns the active prayer requests, urgent first.
func (s *Session) ListPrayerRequests(ctx context.Context) ([]PrayerRequest, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/prayer-requests", nil)
	if err != nil {
		return nil, err
	}

	var out []PrayerRequest
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// MyPrayerRequests returns the member's own requests, including expired ones.
func (s *Session) MyPrayerRequests(ctx context.Context) ([]PrayerRequest, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/prayer-requests/mine", nil)
	if err != nil {
		return nil, err
	}

	var out []PrayerRequest
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPrayerRequest returns one prayer request.
func (s *Session) GetPrayerRequest(ctx context.Context, id string) (PrayerRequest, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/prayer-requests/"+id, nil)
	if err != nil {
		return PrayerRequest{}, err
	}

	var out PrayerRequest
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return PrayerRequest{}, err
	}
	return out, nil
}

// CreatePrayerRequest files a prayer request on behalf of the member.
func (s *Session) CreatePrayerRequest(ctx context.Context, input PrayerRequestInput) (PrayerRequest, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/prayer-requests", input)
	if err != nil {
		return PrayerRequest{}, err
	}

	var out PrayerRequest
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return PrayerRequest{}, err
	}
	return out, nil
}

// UpdatePrayerRequest replaces a request's details. Only the requester or
// church staff may update a request.
func (s *Session) UpdatePrayerRequest(ctx context.Context, id string, input PrayerRequestInput) (PrayerRequest, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/prayer-requests/"+id, input)
	if err != nil {
		return PrayerRequest{}, err
	}

	var out PrayerRequest
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return PrayerRequest{}, err
	}
	return out, nil
}

// DeletePrayerRequest removes a request. Only the requester or church staff
// may delete it.
func (s *Session) DeletePrayerRequest(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/prayer-requests/"+id, nil)
	if err != nil {
		return err
	}
	return drainJSON(resp, http.StatusOK)
}

// Pray records that the member prayed for the request and returns it with the
// updated count. Praying twice is harmless.
func (s *Session) Pray(ctx context.Context, id string) (PrayerRequest, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/prayer-requests/"+id+"/pray", nil)
	if err != nil {
		return PrayerRequest{}, err
	}

	var out PrayerRequest
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return PrayerRequest{}, err
	}
	return out, nil
}

// MarkAnswered closes a request with a testimony note. Only the requester or
// church staff may answer it.
func (s *Session) MarkAnswered(ctx context.Context, id, notes string) (PrayerRequest, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/prayer-requests/"+id+"/answer", map[string]string{
		"notes": notes,
	})
	if err != nil {
		return PrayerRequest{}, err
	}

	var out PrayerRequest
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return PrayerRequest{}, err
	}
	return out, nil
}
