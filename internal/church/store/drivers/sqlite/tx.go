package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/store"
)

type txStore struct {
	tx  *sql.Tx
	now func() time.Time
}

func newTx(tx *sql.Tx, now func() time.Time) *txStore {
	return &txStore{tx: tx, now: now}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // nothing to close; caller will commit/rollback and outer DB stays open

// Ping is a no-op for transactions. The connection is already established
// when the transaction is created, so we just return nil.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                   { return &usersRepo{db: t.tx, now: t.now} }
func (t *txStore) RefreshTokens() store.RefreshTokens   { return &refreshTokensRepo{db: t.tx, now: t.now} }
func (t *txStore) Events() store.Events                 { return &eventsRepo{db: t.tx, now: t.now} }
func (t *txStore) Sermons() store.Sermons               { return &sermonsRepo{db: t.tx, now: t.now} }
func (t *txStore) PrayerRequests() store.PrayerRequests { return &prayerRequestsRepo{db: t.tx, now: t.now} }

func (t *txStore) ApplyMigrations() error { return nil } // no-op; migrations should be applied before starting a tx
