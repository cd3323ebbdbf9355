package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var userMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,

		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,

		password BLOB NOT NULL,

		-- First half of the e-tickets keys, generated at registration
		key1 TEXT NOT NULL,

		created_at INTEGER NOT NULL,

		UNIQUE (email)
	);`,
}

type User struct {
	ID int64

	FirstName string
	LastName  string
	Email     string

	Key1 string

	CreatedAt time.Time

	password []byte
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type NewUser struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Key1      string
}

func (s *Store) CreateUser(ctx context.Context, newUser NewUser) (*User, error) {
	passwordHash, err := hashPassword(newUser.Password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	email := normalizeEmail(newUser.Email)

	var user *User

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		exists := false

		err := sqlitex.Execute(conn, `SELECT 1 FROM users WHERE email = ? LIMIT 1`, &sqlitex.ExecOptions{
			Args: []any{email},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				exists = true
				return nil
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if exists {
			return errors.WithStack(ErrEmailTaken)
		}

		query := fmt.Sprintf(`
			INSERT INTO users
				(first_name, last_name, email, password, key1, created_at)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING %s;`,
			userAttributes,
		)

		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{
				strings.TrimSpace(newUser.FirstName), strings.TrimSpace(newUser.LastName), email,
				passwordHash, newUser.Key1, time.Now().UTC().Unix(),
			},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

func (s *Store) Authenticate(ctx context.Context, email string, password string) (*User, error) {
	var user *User

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE email = ? LIMIT 1`, userAttributes)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{normalizeEmail(email)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if user == nil || !verifyPassword([]byte(password), user.password) {
		return nil, errors.WithStack(ErrInvalidCredentials)
	}

	return user, nil
}

func (s *Store) GetUser(ctx context.Context, userID int64) (*User, error) {
	var user *User

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ?`, userAttributes)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if user == nil {
		return nil, errors.WithStack(ErrNotFound)
	}

	return user, nil
}

func (s *Store) ListUsers(ctx context.Context, page int) (Page[*User], error) {
	page = normalizePage(page)
	limit, offset := pageBounds(page)

	users := make([]*User, 0, limit)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users ORDER BY id ASC LIMIT ? OFFSET ?`, userAttributes)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{limit, offset},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user := &User{}
				if err := s.bindUser(stmt, user); err != nil {
					return errors.WithStack(err)
				}

				users = append(users, user)
				return nil
			},
		}))
	})
	if err != nil {
		return Page[*User]{}, errors.WithStack(err)
	}

	return newPage(page, users), nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, "SELECT COUNT(*) FROM users", &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		}))
	})

	return count, errors.WithStack(err)
}

var userAttributes = `id, first_name, last_name, email, password, key1, created_at`

func (s *Store) bindUser(stmt *sqlite.Stmt, user *User) error {
	user.ID = stmt.ColumnInt64(0)
	user.FirstName = stmt.ColumnText(1)
	user.LastName = stmt.ColumnText(2)
	user.Email = stmt.ColumnText(3)

	user.password = make([]byte, stmt.ColumnLen(4))
	stmt.ColumnBytes(4, user.password)

	user.Key1 = stmt.ColumnText(5)
	user.CreatedAt = time.Unix(stmt.ColumnInt64(6), 0)

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return hash, nil
}

func verifyPassword(password, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, password) == nil
}
