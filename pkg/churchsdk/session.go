package churchsdk

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Session represents an authenticated member session. All Session methods
// refresh the access token automatically shortly before it expires.
type Session struct {
	client *Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// newSession creates a session from a freshly issued token pair.
func newSession(client *Client, accessToken, refreshToken string, expiresIn int) *Session {
	return &Session{
		client:       client,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		// Refresh 30 seconds ahead of actual expiry.
		expiresAt: time.Now().Add(time.Duration(expiresIn)*time.Second - 30*time.Second),
	}
}

// getValidToken returns a valid access token, refreshing it if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.refreshToken == "" {
		return "", fmt.Errorf("access token expired and no refresh token available")
	}

	pair, err := s.client.RefreshGrant(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh session: %w", err)
	}

	s.accessToken = pair.AccessToken
	s.refreshToken = pair.RefreshToken
	s.expiresAt = time.Now().Add(time.Duration(pair.ExpiresIn)*time.Second - 30*time.Second)

	return s.accessToken, nil
}

// Logout revokes the session's refresh token server-side.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	if refreshToken == "" {
		return nil
	}
	return s.client.revokeToken(ctx, refreshToken)
}

// AccessToken returns the current access token without checking expiration.
// Prefer the Session methods, which handle refresh automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token. Store both halves of the
// pair together; refresh consumes the old pair.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}
