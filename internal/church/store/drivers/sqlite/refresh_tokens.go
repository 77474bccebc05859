package sqlite

import (
	"context"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/pkg/idx"
)

type refreshTokensRepo struct {
	db  dbtx
	now func() time.Time
}

func (r *refreshTokensRepo) Create(ctx context.Context, userID, tokenHash string, lifetime time.Duration) (domain.RefreshToken, error) {
	now := r.now().UTC()
	rec := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(lifetime),
		Revoked:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)`,
		rec.ID, rec.UserID, rec.TokenHash, rec.ExpiresAt, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return domain.RefreshToken{}, mapConstraint(err)
	}
	return rec, nil
}

func (r *refreshTokensRepo) FindValid(ctx context.Context, userID, tokenHash string) (domain.RefreshToken, error) {
	var rec domain.RefreshToken
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, revoked, created_at, updated_at
		FROM refresh_tokens
		WHERE user_id = ? AND token_hash = ? AND revoked = 0 AND expires_at > ?`,
		userID, tokenHash, r.now().UTC(),
	).Scan(&rec.ID, &rec.UserID, &rec.TokenHash, &rec.ExpiresAt, &rec.Revoked, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *refreshTokensRepo) Revoke(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked = 1, updated_at = ?
		WHERE token_hash = ? AND revoked = 0`,
		r.now().UTC(), tokenHash,
	)
	return err
}

// Consume revokes the record only while it is still valid. The WHERE clause
// doubles as the compare-and-swap: exactly one concurrent caller observes a
// row change and wins.
func (r *refreshTokensRepo) Consume(ctx context.Context, tokenHash string) (bool, error) {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked = 1, updated_at = ?
		WHERE token_hash = ? AND revoked = 0 AND expires_at > ?`,
		now, tokenHash, now,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *refreshTokensRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked = 1, updated_at = ?
		WHERE user_id = ? AND revoked = 0`,
		r.now().UTC(), userID,
	)
	return err
}

func (r *refreshTokensRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM refresh_tokens WHERE expires_at <= ?`,
		r.now().UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
