// Package store provides persistence for the catalog backed by
// Postgres. All repositories hang off one Store holding an injected
// database handle.
package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound signals the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrExists signals a create collided with an existing key.
	ErrExists = errors.New("already exists")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrServiceMissing signals a catalog row referencing an unknown service.
	ErrServiceMissing = errors.New("service does not exist")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Page bounds a list query.
type Page struct {
	Limit  int
	Offset int
}

// like wraps a filter value for a case-insensitive substring match.
// The empty string matches everything.
func like(value string) string {
	return "%" + value + "%"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
