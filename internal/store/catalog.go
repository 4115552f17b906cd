package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Kind identifies one of the catalog tables sharing the same row shape
// (externally-supplied id, name, url, owning service).
type Kind struct {
	label string
	table string
}

var (
	Albums  = Kind{label: "Album", table: "albums"}
	Artists = Kind{label: "Artist", table: "artists"}
	Tracks  = Kind{label: "Track", table: "tracks"}
)

// Label returns the display name used in response messages.
func (k Kind) Label() string { return k.label }

// Entity is a catalog row with its owning service summary embedded.
type Entity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Service   Service   `json:"service"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
	Endpoint  string    `json:"endpoint,omitempty"`
}

// EntityFilter narrows ListEntities by substring match.
type EntityFilter struct {
	Name    string
	Service string
}

// EntityPatch carries the mutable catalog fields; nil means keep current.
type EntityPatch struct {
	Name *string
	URL  *string
}

const entityColumns = `e.id, e.name, e.url, e.created_on, e.updated_on,
		       s.name, s.friendly_name, s.url`

func scanEntity(row interface{ Scan(...any) error }) (Entity, error) {
	var e Entity
	err := row.Scan(&e.ID, &e.Name, &e.URL, &e.CreatedOn, &e.UpdatedOn,
		&e.Service.Name, &e.Service.FriendlyName, &e.Service.URL)
	return e, err
}

// ListEntities returns a page of catalog rows plus the total matching count.
func (s *Store) ListEntities(ctx context.Context, kind Kind, filter EntityFilter, page Page) ([]Entity, int, error) {
	query := fmt.Sprintf(`
		SELECT `+entityColumns+`
		FROM %s e
		JOIN services s ON s.name = e.service
		WHERE e.name ILIKE $1 AND e.service ILIKE $2
		ORDER BY e.id
		LIMIT $3 OFFSET $4
	`, kind.table)

	rows, err := s.db.QueryContext(ctx, query,
		like(filter.Name), like(filter.Service), page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select %s: %w", kind.table, err)
	}
	defer rows.Close()

	entities := []Entity{}
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", kind.table, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate %s: %w", kind.table, err)
	}

	var total int
	count := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s e
		WHERE e.name ILIKE $1 AND e.service ILIKE $2
	`, kind.table)
	if err := s.db.QueryRowContext(ctx, count, like(filter.Name), like(filter.Service)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", kind.table, err)
	}

	return entities, total, nil
}

// EntityByID returns the catalog row for an exact id.
func (s *Store) EntityByID(ctx context.Context, kind Kind, id string) (Entity, error) {
	query := fmt.Sprintf(`
		SELECT `+entityColumns+`
		FROM %s e
		JOIN services s ON s.name = e.service
		WHERE e.id = $1
	`, kind.table)

	entity, err := scanEntity(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entity{}, ErrNotFound
		}
		return Entity{}, fmt.Errorf("lookup %s: %w", kind.table, err)
	}
	return entity, nil
}

// CreateEntity inserts a catalog row in one statement. A taken id
// returns ErrExists; an unknown service returns ErrServiceMissing via
// the foreign key rather than a separate pre-check.
func (s *Store) CreateEntity(ctx context.Context, kind Kind, id, name, url, service string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, url, service)
		VALUES ($1, $2, $3, $4)
	`, kind.table)

	if _, err := s.db.ExecContext(ctx, query, id, name, url, service); err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrExists
		case isForeignKeyViolation(err):
			return ErrServiceMissing
		}
		return fmt.Errorf("insert %s: %w", kind.table, err)
	}
	return nil
}

// UpdateEntity applies the present patch fields in one write and
// refreshes updated_on.
func (s *Store) UpdateEntity(ctx context.Context, kind Kind, id string, patch EntityPatch) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = COALESCE($2, name),
		    url = COALESCE($3, url),
		    updated_on = NOW()
		WHERE id = $1
	`, kind.table)

	result, err := s.db.ExecContext(ctx, query, id, patch.Name, patch.URL)
	if err != nil {
		return fmt.Errorf("update %s: %w", kind.table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", kind.table, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEntity removes a catalog row and its link rows (cascaded).
func (s *Store) DeleteEntity(ctx context.Context, kind Kind, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, kind.table)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind.table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind.table, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
