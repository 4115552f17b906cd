// Package catalog coordinates album, artist and track workflows,
// including the many-to-many links between them.
package catalog

import (
	"context"

	"dizzie/internal/store"
)

// Store captures the persistence needs for catalog workflows.
type Store interface {
	ListEntities(ctx context.Context, kind store.Kind, filter store.EntityFilter, page store.Page) ([]store.Entity, int, error)
	EntityByID(ctx context.Context, kind store.Kind, id string) (store.Entity, error)
	CreateEntity(ctx context.Context, kind store.Kind, id, name, url, service string) error
	UpdateEntity(ctx context.Context, kind store.Kind, id string, patch store.EntityPatch) error
	DeleteEntity(ctx context.Context, kind store.Kind, id string) error

	ListLinked(ctx context.Context, rel store.Relation, owner string, page store.Page) ([]store.Entity, int, error)
	LinkedByID(ctx context.Context, rel store.Relation, owner, related string) (store.Entity, error)
	CreateLink(ctx context.Context, rel store.Relation, owner, related string) error
	DeleteLink(ctx context.Context, rel store.Relation, owner, related string) error
}

// CreateInput carries the fields of a new catalog row.
type CreateInput struct {
	ID      string
	Name    string
	URL     string
	Service string
}

// Service coordinates catalog operations for all three kinds.
type Service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) *Service {
	return &Service{store: store}
}

// List returns a page of rows of the given kind.
func (s *Service) List(ctx context.Context, kind store.Kind, filter store.EntityFilter, page store.Page) ([]store.Entity, int, error) {
	return s.store.ListEntities(ctx, kind, filter, page)
}

// Get returns one row by id.
func (s *Service) Get(ctx context.Context, kind store.Kind, id string) (store.Entity, error) {
	return s.store.EntityByID(ctx, kind, id)
}

// Create inserts a row and returns the canonical representation.
// Duplicate ids surface store.ErrExists, unknown services
// store.ErrServiceMissing, both from the single insert statement.
func (s *Service) Create(ctx context.Context, kind store.Kind, in CreateInput) (store.Entity, error) {
	if err := s.store.CreateEntity(ctx, kind, in.ID, in.Name, in.URL, in.Service); err != nil {
		return store.Entity{}, err
	}
	return s.store.EntityByID(ctx, kind, in.ID)
}

// Update applies a partial update and returns the canonical row.
func (s *Service) Update(ctx context.Context, kind store.Kind, id string, patch store.EntityPatch) (store.Entity, error) {
	if err := s.store.UpdateEntity(ctx, kind, id, patch); err != nil {
		return store.Entity{}, err
	}
	return s.store.EntityByID(ctx, kind, id)
}

// Delete removes a row by id.
func (s *Service) Delete(ctx context.Context, kind store.Kind, id string) error {
	return s.store.DeleteEntity(ctx, kind, id)
}

// ListLinked returns a page of rows linked to owner.
func (s *Service) ListLinked(ctx context.Context, rel store.Relation, owner string, page store.Page) ([]store.Entity, int, error) {
	return s.store.ListLinked(ctx, rel, owner, page)
}

// GetLinked returns the related row if the pair is linked.
func (s *Service) GetLinked(ctx context.Context, rel store.Relation, owner, related string) (store.Entity, error) {
	return s.store.LinkedByID(ctx, rel, owner, related)
}

// Link records an association and returns the related row.
func (s *Service) Link(ctx context.Context, rel store.Relation, owner, related string) (store.Entity, error) {
	if err := s.store.CreateLink(ctx, rel, owner, related); err != nil {
		return store.Entity{}, err
	}
	return s.store.LinkedByID(ctx, rel, owner, related)
}

// Unlink removes an association.
func (s *Service) Unlink(ctx context.Context, rel store.Relation, owner, related string) error {
	return s.store.DeleteLink(ctx, rel, owner, related)
}
