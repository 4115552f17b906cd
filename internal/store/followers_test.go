package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestListFollowersJoinsProfiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT u.username, u.role, u.name, u.surname, u.bio, f.followed_on
		FROM user_followers f
		JOIN users u ON u.username = f.follower
		WHERE f.username = $1
		ORDER BY u.username
		LIMIT $2 OFFSET $3
	`)).
		WithArgs("alice", 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"username", "role", "name", "surname", "bio", "followed_on",
		}).AddRow("bob", "user", nil, nil, nil, now))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(*)
		FROM user_followers f
		WHERE f.username = $1
	`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	followers, total, err := s.ListFollowers(context.Background(), "alice", Page{Limit: 100})
	if err != nil {
		t.Fatalf("ListFollowers error: %v", err)
	}
	if len(followers) != 1 || followers[0].Username != "bob" {
		t.Fatalf("unexpected followers: %+v", followers)
	}
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
}

func TestFollowerByNameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE f.username = $1 AND f.follower = $2`)).
		WithArgs("alice", "nobody").
		WillReturnRows(sqlmock.NewRows([]string{
			"username", "role", "name", "surname", "bio", "followed_on",
		}))

	if _, err := s.FollowerByName(context.Background(), "alice", "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateFollowerDuplicateEdge(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO user_followers (username, follower)
		VALUES ($1, $2)
	`)).
		WithArgs("alice", "bob").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if err := s.CreateFollower(context.Background(), "alice", "bob"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestCreateFollowerUnknownAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_followers`)).
		WithArgs("alice", "ghost").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	if err := s.CreateFollower(context.Background(), "alice", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteFollowerNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM user_followers
		WHERE username = $1 AND follower = $2
	`)).
		WithArgs("alice", "nobody").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.DeleteFollower(context.Background(), "alice", "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
