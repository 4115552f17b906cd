// Package followers coordinates the directed follow edges between users.
package followers

import (
	"context"

	"dizzie/internal/store"
)

// Store captures the persistence needs for follower workflows.
type Store interface {
	ListFollowers(ctx context.Context, username string, page store.Page) ([]store.Follower, int, error)
	FollowerByName(ctx context.Context, username, follower string) (store.Follower, error)
	CreateFollower(ctx context.Context, username, follower string) error
	DeleteFollower(ctx context.Context, username, follower string) error
}

// Service coordinates follower operations.
type Service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) *Service {
	return &Service{store: store}
}

// List returns a page of accounts following username.
func (s *Service) List(ctx context.Context, username string, page store.Page) ([]store.Follower, int, error) {
	return s.store.ListFollowers(ctx, username, page)
}

// Get returns the follow edge between the pair, if any.
func (s *Service) Get(ctx context.Context, username, follower string) (store.Follower, error) {
	return s.store.FollowerByName(ctx, username, follower)
}

// Follow records an edge and returns it.
func (s *Service) Follow(ctx context.Context, username, follower string) (store.Follower, error) {
	if err := s.store.CreateFollower(ctx, username, follower); err != nil {
		return store.Follower{}, err
	}
	return s.store.FollowerByName(ctx, username, follower)
}

// Unfollow removes an edge.
func (s *Service) Unfollow(ctx context.Context, username, follower string) error {
	return s.store.DeleteFollower(ctx, username, follower)
}
