package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
)

type prayerRequestsRepo struct {
	db  dbtx
	now func() time.Time
}

const prayerColumns = `id, requester, title, description, category, anonymous, urgent, answered, answer_notes, answered_at, prayer_count, public, expires_at, created_at, updated_at`

func scanPrayerRequest(scan func(dest ...any) error) (domain.PrayerRequest, error) {
	var p domain.PrayerRequest
	var category string
	var answeredAt, expiresAt sql.NullTime
	err := scan(
		&p.ID, &p.Requester, &p.Title, &p.Description, &category,
		&p.Anonymous, &p.Urgent, &p.Answered, &p.AnswerNotes, &answeredAt,
		&p.PrayerCount, &p.Public, &expiresAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.PrayerRequest{}, mapNotFound(err)
	}
	p.Category = domain.PrayerCategory(category)
	p.AnsweredAt = mapNullTimePtr(answeredAt)
	p.ExpiresAt = mapNullTimePtr(expiresAt)
	return p, nil
}

func (r *prayerRequestsRepo) CreatePrayerRequest(ctx context.Context, p domain.PrayerRequest) error {
	now := r.now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prayer_requests (`+prayerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Requester, p.Title, p.Description, string(p.Category),
		p.Anonymous, p.Urgent, p.Answered, p.AnswerNotes, mapOptionalTime(p.AnsweredAt),
		p.PrayerCount, p.Public, mapOptionalTime(p.ExpiresAt), now, now,
	)
	return mapConstraint(err)
}

func (r *prayerRequestsRepo) GetPrayerRequestByID(ctx context.Context, id string) (domain.PrayerRequest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+prayerColumns+` FROM prayer_requests WHERE id = ?`, id)
	p, err := scanPrayerRequest(row.Scan)
	if err != nil {
		return domain.PrayerRequest{}, err
	}
	p.PrayedBy, err = r.supporters(ctx, p.ID)
	if err != nil {
		return domain.PrayerRequest{}, err
	}
	return p, nil
}

func (r *prayerRequestsRepo) ListPrayerRequests(ctx context.Context) ([]domain.PrayerRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+prayerColumns+` FROM prayer_requests
		WHERE expires_at IS NULL OR expires_at > ?
		ORDER BY urgent DESC, created_at DESC`,
		r.now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	return r.collectPrayerRequests(ctx, rows)
}

func (r *prayerRequestsRepo) ListPrayerRequestsForRequester(ctx context.Context, userID string) ([]domain.PrayerRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+prayerColumns+` FROM prayer_requests
		WHERE requester = ?
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.collectPrayerRequests(ctx, rows)
}

func (r *prayerRequestsRepo) collectPrayerRequests(ctx context.Context, rows *sql.Rows) ([]domain.PrayerRequest, error) {
	defer rows.Close()

	var out []domain.PrayerRequest
	for rows.Next() {
		p, err := scanPrayerRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		supporters, err := r.supporters(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].PrayedBy = supporters
	}
	return out, nil
}

func (r *prayerRequestsRepo) supporters(ctx context.Context, requestID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM prayer_supporters WHERE request_id = ? ORDER BY created_at ASC`,
		requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *prayerRequestsRepo) UpdatePrayerRequest(ctx context.Context, p domain.PrayerRequest) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE prayer_requests SET
			title = ?, description = ?, category = ?, anonymous = ?, urgent = ?,
			public = ?, expires_at = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Description, string(p.Category), p.Anonymous, p.Urgent,
		p.Public, mapOptionalTime(p.ExpiresAt), r.now().UTC(), p.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *prayerRequestsRepo) DeletePrayerRequest(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prayer_requests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// AddSupporter records the user's prayer at most once. The INSERT OR IGNORE
// makes the operation idempotent; prayer_count only moves when the row is new.
func (r *prayerRequestsRepo) AddSupporter(ctx context.Context, requestID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO prayer_supporters (request_id, user_id, created_at)
		VALUES (?, ?, ?)`,
		requestID, userID, r.now().UTC(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE prayer_requests SET prayer_count = prayer_count + 1, updated_at = ?
		WHERE id = ?`,
		r.now().UTC(), requestID,
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *prayerRequestsRepo) MarkAnswered(ctx context.Context, id, notes string) error {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE prayer_requests SET answered = 1, answer_notes = ?, answered_at = ?, updated_at = ?
		WHERE id = ?`,
		notes, now, now, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *prayerRequestsRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM prayer_requests WHERE expires_at IS NOT NULL AND expires_at <= ?`,
		r.now().UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
