package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
)

type eventsRepo struct {
	db  dbtx
	now func() time.Time
}

const eventColumns = `id, title, description, date, start_time, end_time, location, type, recurring, recurring_pattern, public, max_attendees, organizer, notes, created_at, updated_at`

func (r *eventsRepo) scanEvent(scan func(dest ...any) error) (domain.Event, error) {
	var e domain.Event
	var typ, pattern string
	err := scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.StartTime, &e.EndTime,
		&e.Location, &typ, &e.Recurring, &pattern, &e.Public, &e.MaxAttendees,
		&e.Organizer, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return domain.Event{}, mapNotFound(err)
	}
	e.Type = domain.EventType(typ)
	e.RecurringPattern = domain.RecurringPattern(pattern)
	return e, nil
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	now := r.now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Description, e.Date, e.StartTime, e.EndTime,
		e.Location, string(e.Type), e.Recurring, string(e.RecurringPattern),
		e.Public, e.MaxAttendees, e.Organizer, e.Notes, now, now,
	)
	return mapConstraint(err)
}

func (r *eventsRepo) GetEventByID(ctx context.Context, id string) (domain.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := r.scanEvent(row.Scan)
	if err != nil {
		return domain.Event{}, err
	}
	e.Attendees, err = r.attendees(ctx, e.ID)
	if err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func (r *eventsRepo) ListEvents(ctx context.Context, publicOnly bool) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	if publicOnly {
		query += ` WHERE public = 1`
	}
	query += ` ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.collectEvents(ctx, rows)
}

func (r *eventsRepo) ListEventsForAttendee(ctx context.Context, userID string) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+prefixed(eventColumns, "e.")+`
		FROM events e
		JOIN event_attendees a ON a.event_id = e.id
		WHERE a.user_id = ?
		ORDER BY e.date ASC`, userID)
	if err != nil {
		return nil, err
	}
	return r.collectEvents(ctx, rows)
}

func (r *eventsRepo) collectEvents(ctx context.Context, rows *sql.Rows) ([]domain.Event, error) {
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		e, err := r.scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attendee lists are fetched per event after the result set is drained;
	// sqlite does not allow a second query on the same connection mid-scan.
	for i := range out {
		attendees, err := r.attendees(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Attendees = attendees
	}
	return out, nil
}

func (r *eventsRepo) attendees(ctx context.Context, eventID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM event_attendees WHERE event_id = ? ORDER BY created_at ASC`,
		eventID)
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

func (r *eventsRepo) UpdateEvent(ctx context.Context, e domain.Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events SET
			title = ?, description = ?, date = ?, start_time = ?, end_time = ?,
			location = ?, type = ?, recurring = ?, recurring_pattern = ?,
			public = ?, max_attendees = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		e.Title, e.Description, e.Date, e.StartTime, e.EndTime,
		e.Location, string(e.Type), e.Recurring, string(e.RecurringPattern),
		e.Public, e.MaxAttendees, e.Notes, r.now().UTC(), e.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *eventsRepo) DeleteEvent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *eventsRepo) AddAttendee(ctx context.Context, eventID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO event_attendees (event_id, user_id, created_at) VALUES (?, ?, ?)`,
		eventID, userID, r.now().UTC(),
	)
	return mapConstraint(err)
}

func (r *eventsRepo) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM event_attendees WHERE event_id = ? AND user_id = ?`,
		eventID, userID,
	)
	return err
}

// prefixed rewrites a comma-joined column list with a table alias.
func prefixed(columns, alias string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + p
	}
	return strings.Join(parts, ", ")
}
