package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
)

type sermonsRepo struct {
	db  dbtx
	now func() time.Time
}

const sermonColumns = `id, title, scripture, preacher, date, description, video_url, audio_url, tags, public, view_count, duration, series, series_part, created_at, updated_at`

func scanSermon(scan func(dest ...any) error) (domain.Sermon, error) {
	var s domain.Sermon
	var tags string
	err := scan(
		&s.ID, &s.Title, &s.Scripture, &s.Preacher, &s.Date, &s.Description,
		&s.VideoURL, &s.AudioURL, &tags, &s.Public, &s.ViewCount, &s.Duration,
		&s.Series, &s.SeriesPart, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return domain.Sermon{}, mapNotFound(err)
	}
	s.Tags = splitTags(tags)
	return s, nil
}

func (r *sermonsRepo) CreateSermon(ctx context.Context, s domain.Sermon) error {
	now := r.now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sermons (`+sermonColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Title, s.Scripture, s.Preacher, s.Date, s.Description,
		s.VideoURL, s.AudioURL, joinTags(s.Tags), s.Public, s.ViewCount,
		s.Duration, s.Series, s.SeriesPart, now, now,
	)
	return mapConstraint(err)
}

func (r *sermonsRepo) GetSermonByID(ctx context.Context, id string) (domain.Sermon, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sermonColumns+` FROM sermons WHERE id = ?`, id)
	return scanSermon(row.Scan)
}

func (r *sermonsRepo) ListSermons(ctx context.Context, publicOnly bool) ([]domain.Sermon, error) {
	query := `SELECT ` + sermonColumns + ` FROM sermons`
	if publicOnly {
		query += ` WHERE public = 1`
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectSermons(rows)
}

func collectSermons(rows *sql.Rows) ([]domain.Sermon, error) {
	defer rows.Close()

	var out []domain.Sermon
	for rows.Next() {
		s, err := scanSermon(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sermonsRepo) UpdateSermon(ctx context.Context, s domain.Sermon) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sermons SET
			title = ?, scripture = ?, date = ?, description = ?, video_url = ?,
			audio_url = ?, tags = ?, public = ?, duration = ?, series = ?,
			series_part = ?, updated_at = ?
		WHERE id = ?`,
		s.Title, s.Scripture, s.Date, s.Description, s.VideoURL,
		s.AudioURL, joinTags(s.Tags), s.Public, s.Duration, s.Series,
		s.SeriesPart, r.now().UTC(), s.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sermonsRepo) DeleteSermon(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sermons WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sermonsRepo) IncrementViewCount(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sermons SET view_count = view_count + 1, updated_at = ? WHERE id = ?`,
		r.now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}
