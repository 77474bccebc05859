package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
)

type usersRepo struct {
	db  dbtx
	now func() time.Time
}

const userColumns = `id, email, password_hash, first_name, last_name, phone, role, active, join_date, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &role, &u.Active, &u.JoinDate, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(email)))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := r.now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, active, join_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(u.Email), u.PasswordHash, u.FirstName, u.LastName,
		u.Phone, string(u.Role), u.Active, u.JoinDate, now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, firstName, lastName, phone string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET first_name = ?, last_name = ?, phone = ?, updated_at = ?
		WHERE id = ?`,
		firstName, lastName, phone, r.now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET active = ?, updated_at = ? WHERE id = ?`,
		active, r.now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow turns a zero-row update/delete into ErrNotFound so callers can
// distinguish "missing" from "no change".
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
