package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// dummyPasswordHash keeps unknown-username logins on the same bcrypt
// code path as real ones.
var dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")

// User is an account row. The password hash never leaves the store.
type User struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Name      *string   `json:"name,omitempty"`
	Surname   *string   `json:"surname,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
	Endpoint  string    `json:"endpoint,omitempty"`
}

// UserFilter narrows ListUsers by substring match.
type UserFilter struct {
	Username string
	Role     string
}

// UserPatch carries the mutable user fields; nil means keep current.
type UserPatch struct {
	Password *string
	Role     *string
	Name     *string
	Surname  *string
	Bio      *string
}

const userColumns = `u.username, u.role, u.name, u.surname, u.bio, u.created_on, u.updated_on`

// CreateUser inserts an account in one statement. A taken username
// returns ErrExists.
func (s *Store) CreateUser(ctx context.Context, username, password, role string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`, username, hash, role)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if affected == 0 {
		return ErrExists
	}
	return nil
}

// Authenticate validates credentials and returns the account.
func (s *Store) Authenticate(ctx context.Context, username, password string) (User, error) {
	var (
		user User
		hash []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`, u.password_hash
		FROM users u
		WHERE u.username = $1
	`, username).Scan(&user.Username, &user.Role, &user.Name, &user.Surname, &user.Bio,
		&user.CreatedOn, &user.UpdatedOn, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// ListUsers returns a page of accounts plus the total matching count.
func (s *Store) ListUsers(ctx context.Context, filter UserFilter, page Page) ([]User, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users u
		WHERE u.username ILIKE $1 AND u.role ILIKE $2
		ORDER BY u.username
		LIMIT $3 OFFSET $4
	`, like(filter.Username), like(filter.Role), page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.Username, &user.Role, &user.Name, &user.Surname,
			&user.Bio, &user.CreatedOn, &user.UpdatedOn); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	var total int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM users u
		WHERE u.username ILIKE $1 AND u.role ILIKE $2
	`, like(filter.Username), like(filter.Role)).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

// UserByName returns the account for an exact username.
func (s *Store) UserByName(ctx context.Context, username string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users u
		WHERE u.username = $1
	`, username).Scan(&user.Username, &user.Role, &user.Name, &user.Surname,
		&user.Bio, &user.CreatedOn, &user.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// UpdateUser applies the present patch fields in one write and
// refreshes updated_on.
func (s *Store) UpdateUser(ctx context.Context, username string, patch UserPatch) error {
	var hash []byte
	if patch.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = COALESCE($2, password_hash),
		    role = COALESCE($3, role),
		    name = COALESCE($4, name),
		    surname = COALESCE($5, surname),
		    bio = COALESCE($6, bio),
		    updated_on = NOW()
		WHERE username = $1
	`, username, hash, patch.Role, patch.Name, patch.Surname, patch.Bio)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes an account and its follow edges (cascaded).
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM users
		WHERE username = $1
	`, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
