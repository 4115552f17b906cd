// Package users coordinates account workflows: sign-up, sign-in with
// token issuance, and administrative account management.
package users

import (
	"context"

	"dizzie/internal/api"
	"dizzie/internal/auth"
	"dizzie/internal/store"
)

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, username, password, role string) error
	Authenticate(ctx context.Context, username, password string) (store.User, error)
	ListUsers(ctx context.Context, filter store.UserFilter, page store.Page) ([]store.User, int, error)
	UserByName(ctx context.Context, username string) (store.User, error)
	UpdateUser(ctx context.Context, username string, patch store.UserPatch) error
	DeleteUser(ctx context.Context, username string) error
}

// Session is what a successful sign-in returns.
type Session struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Version int    `json:"version"`
}

// Service exposes user-related workflows.
type Service struct {
	store  Store
	tokens *auth.Manager
}

// New wires a Service backed by the provided Store and token issuer.
func New(store Store, tokens *auth.Manager) *Service {
	return &Service{store: store, tokens: tokens}
}

// Signup registers a new account with the default role.
func (s *Service) Signup(ctx context.Context, username, password string) error {
	return s.store.CreateUser(ctx, username, password, string(auth.RoleUser))
}

// Signin validates credentials and issues a time-limited token.
func (s *Service) Signin(ctx context.Context, username, password string) (Session, error) {
	user, err := s.store.Authenticate(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	token, err := s.tokens.Issue(user.Username, auth.Role(user.Role))
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, Role: user.Role, Version: api.Version}, nil
}

// List returns a page of accounts.
func (s *Service) List(ctx context.Context, filter store.UserFilter, page store.Page) ([]store.User, int, error) {
	return s.store.ListUsers(ctx, filter, page)
}

// Get returns one account by username.
func (s *Service) Get(ctx context.Context, username string) (store.User, error) {
	return s.store.UserByName(ctx, username)
}

// Create registers an account with an explicit role (admin workflows).
func (s *Service) Create(ctx context.Context, username, password, role string) (store.User, error) {
	if err := s.store.CreateUser(ctx, username, password, role); err != nil {
		return store.User{}, err
	}
	return s.store.UserByName(ctx, username)
}

// Update applies a partial update and returns the canonical row.
func (s *Service) Update(ctx context.Context, username string, patch store.UserPatch) (store.User, error) {
	if err := s.store.UpdateUser(ctx, username, patch); err != nil {
		return store.User{}, err
	}
	return s.store.UserByName(ctx, username)
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, username string) error {
	return s.store.DeleteUser(ctx, username)
}
