package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Follower is a directed follow edge joined to the follower's profile.
type Follower struct {
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Name       *string   `json:"name,omitempty"`
	Surname    *string   `json:"surname,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
	FollowedOn time.Time `json:"followedOn"`
	Endpoint   string    `json:"endpoint,omitempty"`
}

const followerColumns = `u.username, u.role, u.name, u.surname, u.bio, f.followed_on`

// ListFollowers returns a page of accounts following username, with totals.
func (s *Store) ListFollowers(ctx context.Context, username string, page Page) ([]Follower, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+followerColumns+`
		FROM user_followers f
		JOIN users u ON u.username = f.follower
		WHERE f.username = $1
		ORDER BY u.username
		LIMIT $2 OFFSET $3
	`, username, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select followers: %w", err)
	}
	defer rows.Close()

	followers := []Follower{}
	for rows.Next() {
		var follower Follower
		if err := rows.Scan(&follower.Username, &follower.Role, &follower.Name,
			&follower.Surname, &follower.Bio, &follower.FollowedOn); err != nil {
			return nil, 0, fmt.Errorf("scan follower: %w", err)
		}
		followers = append(followers, follower)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate followers: %w", err)
	}

	var total int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM user_followers f
		WHERE f.username = $1
	`, username).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count followers: %w", err)
	}

	return followers, total, nil
}

// FollowerByName returns the follow edge between the pair, if any.
func (s *Store) FollowerByName(ctx context.Context, username, follower string) (Follower, error) {
	var f Follower
	err := s.db.QueryRowContext(ctx, `
		SELECT `+followerColumns+`
		FROM user_followers f
		JOIN users u ON u.username = f.follower
		WHERE f.username = $1 AND f.follower = $2
	`, username, follower).Scan(&f.Username, &f.Role, &f.Name, &f.Surname, &f.Bio, &f.FollowedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Follower{}, ErrNotFound
		}
		return Follower{}, fmt.Errorf("lookup follower: %w", err)
	}
	return f, nil
}

// CreateFollower records a follow edge in one statement. An existing
// edge returns ErrExists; an unknown account on either side returns
// ErrNotFound via the foreign keys.
func (s *Store) CreateFollower(ctx context.Context, username, follower string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO user_followers (username, follower)
		VALUES ($1, $2)
	`, username, follower); err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrExists
		case isForeignKeyViolation(err):
			return ErrNotFound
		}
		return fmt.Errorf("insert follower: %w", err)
	}
	return nil
}

// DeleteFollower removes a follow edge by pair.
func (s *Store) DeleteFollower(ctx context.Context, username, follower string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM user_followers
		WHERE username = $1 AND follower = $2
	`, username, follower)
	if err != nil {
		return fmt.Errorf("delete follower: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete follower: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
