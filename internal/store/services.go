package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Service is an external music provider row.
type Service struct {
	Name         string `json:"name"`
	FriendlyName string `json:"friendlyName"`
	URL          string `json:"url"`
	Endpoint     string `json:"endpoint,omitempty"`
}

// ServiceFilter narrows ListServices by substring match.
type ServiceFilter struct {
	Name         string
	FriendlyName string
}

// ServicePatch carries the mutable service fields; nil means keep current.
type ServicePatch struct {
	FriendlyName *string
	URL          *string
}

// ListServices returns a page of services plus the total matching count.
func (s *Store) ListServices(ctx context.Context, filter ServiceFilter, page Page) ([]Service, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.name, s.friendly_name, s.url
		FROM services s
		WHERE s.name ILIKE $1 AND s.friendly_name ILIKE $2
		ORDER BY s.name
		LIMIT $3 OFFSET $4
	`, like(filter.Name), like(filter.FriendlyName), page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select services: %w", err)
	}
	defer rows.Close()

	services := []Service{}
	for rows.Next() {
		var service Service
		if err := rows.Scan(&service.Name, &service.FriendlyName, &service.URL); err != nil {
			return nil, 0, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate services: %w", err)
	}

	var total int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM services s
		WHERE s.name ILIKE $1 AND s.friendly_name ILIKE $2
	`, like(filter.Name), like(filter.FriendlyName)).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}

	return services, total, nil
}

// ServiceByName returns the service for an exact name.
func (s *Store) ServiceByName(ctx context.Context, name string) (Service, error) {
	var service Service
	err := s.db.QueryRowContext(ctx, `
		SELECT s.name, s.friendly_name, s.url
		FROM services s
		WHERE s.name = $1
	`, name).Scan(&service.Name, &service.FriendlyName, &service.URL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Service{}, ErrNotFound
		}
		return Service{}, fmt.Errorf("lookup service: %w", err)
	}
	return service, nil
}

// CreateService inserts a provider in one statement. A taken name
// returns ErrExists.
func (s *Store) CreateService(ctx context.Context, service Service) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO services (name, friendly_name, url)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
	`, service.Name, service.FriendlyName, service.URL)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	if affected == 0 {
		return ErrExists
	}
	return nil
}

// UpdateService applies the present patch fields in one write.
func (s *Store) UpdateService(ctx context.Context, name string, patch ServicePatch) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE services
		SET friendly_name = COALESCE($2, friendly_name),
		    url = COALESCE($3, url)
		WHERE name = $1
	`, name, patch.FriendlyName, patch.URL)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteService removes a provider by name.
func (s *Store) DeleteService(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM services
		WHERE name = $1
	`, name)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
