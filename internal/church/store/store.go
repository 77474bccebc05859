package store

import (
	"context"
	"errors"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Events() Events
	Sermons() Sermons
	PrayerRequests() PrayerRequests

	ApplyMigrations() error

	// WithTx executes a function within a transaction. If fn returns an
	// error, the transaction is rolled back; otherwise it is committed.
	// Multi-step operations that must be atomic (refresh rotation) go
	// through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and duplicate-registration checks.
	// Email comparison is case-insensitive (stored lowercased).
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Fails with ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates the mutable profile fields and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, firstName, lastName, phone string) error

	// SetActive flips the active flag. Deactivation takes effect on the next
	// gate check, before access-token natural expiry.
	SetActive(ctx context.Context, userID string, active bool) error

	// DeleteUser cascades to refresh_tokens (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type RefreshTokens interface {
	// Create inserts a new non-revoked record for the owner with absolute
	// expiry now+lifetime. The token is stored by fingerprint; a duplicate
	// fingerprint fails with ErrAlreadyExists.
	Create(ctx context.Context, userID, tokenHash string, lifetime time.Duration) (domain.RefreshToken, error)

	// FindValid returns the record only if owner and fingerprint match, the
	// record is not revoked, and it has not expired. Any miss is ErrNotFound;
	// callers must not distinguish which condition failed.
	FindValid(ctx context.Context, userID, tokenHash string) (domain.RefreshToken, error)

	// Revoke flips revoked=1. Idempotent: no error when nothing matches.
	Revoke(ctx context.Context, tokenHash string) error

	// Consume revokes the record only if it is still valid and reports
	// whether this caller performed the transition. Exactly one concurrent
	// caller wins; the refresh rotation uses this as its gate.
	Consume(ctx context.Context, tokenHash string) (bool, error)

	// RevokeAllForUser bulk-revokes every valid record for the owner
	// ("log out everywhere").
	RevokeAllForUser(ctx context.Context, userID string) error

	// DeleteExpired removes records whose expiry has passed and returns the
	// count deleted. Never touches a still-valid record.
	DeleteExpired(ctx context.Context) (int64, error)
}

type Events interface {
	CreateEvent(ctx context.Context, e domain.Event) error

	// GetEventByID returns the event with its attendee list populated.
	GetEventByID(ctx context.Context, id string) (domain.Event, error)

	// ListEvents returns events ordered by date. With publicOnly set, hidden
	// events are filtered out.
	ListEvents(ctx context.Context, publicOnly bool) ([]domain.Event, error)

	// ListEventsForAttendee returns events the user has joined.
	ListEventsForAttendee(ctx context.Context, userID string) ([]domain.Event, error)

	UpdateEvent(ctx context.Context, e domain.Event) error
	DeleteEvent(ctx context.Context, id string) error

	// AddAttendee records a join; ErrAlreadyExists when already joined.
	AddAttendee(ctx context.Context, eventID, userID string) error

	// RemoveAttendee records a leave; no error when not joined.
	RemoveAttendee(ctx context.Context, eventID, userID string) error
}

type Sermons interface {
	CreateSermon(ctx context.Context, s domain.Sermon) error
	GetSermonByID(ctx context.Context, id string) (domain.Sermon, error)

	// ListSermons returns sermons ordered by date, newest first.
	ListSermons(ctx context.Context, publicOnly bool) ([]domain.Sermon, error)

	UpdateSermon(ctx context.Context, s domain.Sermon) error
	DeleteSermon(ctx context.Context, id string) error

	// IncrementViewCount bumps view_count by one.
	IncrementViewCount(ctx context.Context, id string) error
}

type PrayerRequests interface {
	CreatePrayerRequest(ctx context.Context, p domain.PrayerRequest) error

	// GetPrayerRequestByID returns the request with its prayed-by list.
	GetPrayerRequestByID(ctx context.Context, id string) (domain.PrayerRequest, error)

	// ListPrayerRequests returns non-expired requests, urgent first then newest.
	ListPrayerRequests(ctx context.Context) ([]domain.PrayerRequest, error)

	// ListPrayerRequestsForRequester returns the user's own requests.
	ListPrayerRequestsForRequester(ctx context.Context, userID string) ([]domain.PrayerRequest, error)

	UpdatePrayerRequest(ctx context.Context, p domain.PrayerRequest) error
	DeletePrayerRequest(ctx context.Context, id string) error

	// AddSupporter records that the user prayed; reports false when they
	// already had. Bumps prayer_count on first support only.
	AddSupporter(ctx context.Context, requestID, userID string) (bool, error)

	// MarkAnswered sets the answered flag with notes and timestamp.
	MarkAnswered(ctx context.Context, id, notes string) error

	// DeleteExpired removes requests whose optional expiry has passed and
	// returns the count deleted.
	DeleteExpired(ctx context.Context) (int64, error)
}
