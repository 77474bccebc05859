package churchsdk

import (
	"context"
	"net/http"
)

// Profile returns the account behind this session.
func (s *Session) Profile(ctx context.Context) (User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/auth/profile", nil)
	if err != nil {
		return User{}, err
	}

	var out User
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return User{}, err
	}
	return out, nil
}

// UpdateProfile updates the provided profile fields; fields left at their
// zero value are unchanged on the server.
func (s *Session) UpdateProfile(ctx context.Context, input ProfileInput) (User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/auth/profile", input)
	if err != nil {
		return User{}, err
	}

	var out User
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return User{}, err
	}
	return out, nil
}
