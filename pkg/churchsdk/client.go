package churchsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the church API. It provides access to public
// operations and can open authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register opens a new member account and returns an authenticated session
// for it, along with the created user.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*Session, User, error) {
	resp, err := c.postJSON(ctx, "/api/auth/register", input)
	if err != nil {
		return nil, User{}, err
	}

	var out sessionResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, User{}, err
	}
	return newSession(c, out.AccessToken, out.RefreshToken, out.ExpiresIn), out.User, nil
}

// Login verifies credentials and returns an authenticated session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.postJSON(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var out sessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, out.AccessToken, out.RefreshToken, out.ExpiresIn), nil
}

// SessionFromTokens resumes a session from a stored token pair. The session
// still refreshes automatically when the access token expires, so the pair
// must be the most recently issued one.
func (c *Client) SessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	return newSession(c, accessToken, refreshToken, expiresIn)
}

// RefreshGrant exchanges a refresh token for a new pair. The presented token
// is consumed server-side; replaying it afterwards fails.
func (c *Client) RefreshGrant(ctx context.Context, refreshToken string) (TokenPair, error) {
	resp, err := c.postJSON(ctx, "/api/auth/refresh", map[string]string{
		"refreshToken": refreshToken,
	})
	if err != nil {
		return TokenPair{}, err
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// revokeToken revokes a refresh token server-side.
func (c *Client) revokeToken(ctx context.Context, refreshToken string) error {
	resp, err := c.postJSON(ctx, "/api/auth/logout", map[string]string{
		"refreshToken": refreshToken,
	})
	if err != nil {
		return err
	}
	return drainJSON(resp, http.StatusOK)
}
