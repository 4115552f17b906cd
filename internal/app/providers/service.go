// Package providers manages the registry of external music services
// that catalog entries reference.
package providers

import (
	"context"

	"dizzie/internal/store"
)

// Store captures the persistence needs for provider workflows.
type Store interface {
	ListServices(ctx context.Context, filter store.ServiceFilter, page store.Page) ([]store.Service, int, error)
	ServiceByName(ctx context.Context, name string) (store.Service, error)
	CreateService(ctx context.Context, service store.Service) error
	UpdateService(ctx context.Context, name string, patch store.ServicePatch) error
	DeleteService(ctx context.Context, name string) error
}

// Service coordinates provider registry operations.
type Service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) *Service {
	return &Service{store: store}
}

// List returns a page of providers.
func (s *Service) List(ctx context.Context, filter store.ServiceFilter, page store.Page) ([]store.Service, int, error) {
	return s.store.ListServices(ctx, filter, page)
}

// Get returns one provider by name.
func (s *Service) Get(ctx context.Context, name string) (store.Service, error) {
	return s.store.ServiceByName(ctx, name)
}

// Create registers a provider and returns the canonical row.
func (s *Service) Create(ctx context.Context, service store.Service) (store.Service, error) {
	if err := s.store.CreateService(ctx, service); err != nil {
		return store.Service{}, err
	}
	return s.store.ServiceByName(ctx, service.Name)
}

// Update applies a partial update and returns the canonical row.
func (s *Service) Update(ctx context.Context, name string, patch store.ServicePatch) (store.Service, error) {
	if err := s.store.UpdateService(ctx, name, patch); err != nil {
		return store.Service{}, err
	}
	return s.store.ServiceByName(ctx, name)
}

// Delete removes a provider.
func (s *Service) Delete(ctx context.Context, name string) error {
	return s.store.DeleteService(ctx, name)
}
