package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ojtlog/ojt"

	"github.com/google/uuid"
)

// CreateUser registers a new account. Emails are stored lower-cased and must
// be unique.
func (s *Store) CreateUser(ctx context.Context, user ojt.User) (ojt.User, error) {
	user.Email = normalizeEmail(user.Email)
	user.ID = uuid.NewString()
	user.CreatedAt = s.timestamp()

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM users WHERE email = ?;`), user.Email).Scan(&exists)
		if err == nil {
			return fmt.Errorf("%s: %w", user.Email, ErrEmailTaken)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query user %s: %w", user.Email, err)
		}

		const insert = `
INSERT INTO users (id, email, name, password_hash, created_at)
VALUES (?, ?, ?, ?, ?);`
		if _, err := s.exec(ctx, tx, insert, user.ID, user.Email, user.Name, user.PasswordHash, formatTime(user.CreatedAt)); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return ojt.User{}, err
	}
	return user, nil
}

// EnsureUser returns the account for email, creating it without a password
// when it does not exist. Used by external sign-in.
func (s *Store) EnsureUser(ctx context.Context, email, name string) (ojt.User, error) {
	email = normalizeEmail(email)
	const insert = `
INSERT INTO users (id, email, name, password_hash, created_at)
VALUES (?, ?, ?, '', ?)
ON CONFLICT (email) DO NOTHING;`
	if _, err := s.exec(ctx, s.db, insert, uuid.NewString(), email, name, formatTime(s.timestamp())); err != nil {
		return ojt.User{}, fmt.Errorf("ensure user %s: %w", email, err)
	}
	return s.GetUserByEmail(ctx, email)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (ojt.User, error) {
	email = normalizeEmail(email)
	return s.getUser(ctx, `WHERE email = ?`, email)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (ojt.User, error) {
	return s.getUser(ctx, `WHERE id = ?`, id)
}

func (s *Store) getUser(ctx context.Context, where string, arg string) (ojt.User, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM users ` + where + `;`

	var (
		user       ojt.User
		createdRaw string
	)
	err := s.db.QueryRowContext(ctx, s.rebind(query), arg).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &createdRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ojt.User{}, notFound("user", arg)
		}
		return ojt.User{}, fmt.Errorf("query user: %w", err)
	}
	if user.CreatedAt, err = parseTime(createdRaw); err != nil {
		return ojt.User{}, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
