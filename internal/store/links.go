package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Relation describes one direction of a many-to-many link between two
// catalog tables. The four route families share three tables: the
// album/track link is traversed from both sides.
type Relation struct {
	table      string
	ownerCol   string
	relatedCol string
	related    Kind
}

var (
	AlbumTracks  = Relation{table: "album_tracks", ownerCol: "album", relatedCol: "track", related: Tracks}
	AlbumArtists = Relation{table: "album_artists", ownerCol: "album", relatedCol: "artist", related: Artists}
	TrackAlbums  = Relation{table: "album_tracks", ownerCol: "track", relatedCol: "album", related: Albums}
	TrackArtists = Relation{table: "track_artists", ownerCol: "track", relatedCol: "artist", related: Artists}
)

// Related returns the kind on the far side of the relation.
func (r Relation) Related() Kind { return r.related }

// ListLinked returns a page of rows linked to owner, with totals.
func (s *Store) ListLinked(ctx context.Context, rel Relation, owner string, page Page) ([]Entity, int, error) {
	query := fmt.Sprintf(`
		SELECT `+entityColumns+`
		FROM %s l
		JOIN %s e ON e.id = l.%s
		JOIN services s ON s.name = e.service
		WHERE l.%s = $1
		ORDER BY e.id
		LIMIT $2 OFFSET $3
	`, rel.table, rel.related.table, rel.relatedCol, rel.ownerCol)

	rows, err := s.db.QueryContext(ctx, query, owner, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select %s: %w", rel.table, err)
	}
	defer rows.Close()

	entities := []Entity{}
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", rel.table, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate %s: %w", rel.table, err)
	}

	var total int
	count := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s l
		WHERE l.%s = $1
	`, rel.table, rel.ownerCol)
	if err := s.db.QueryRowContext(ctx, count, owner).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", rel.table, err)
	}

	return entities, total, nil
}

// LinkedByID returns the related row if a link exists between the pair.
func (s *Store) LinkedByID(ctx context.Context, rel Relation, owner, related string) (Entity, error) {
	query := fmt.Sprintf(`
		SELECT `+entityColumns+`
		FROM %s l
		JOIN %s e ON e.id = l.%s
		JOIN services s ON s.name = e.service
		WHERE l.%s = $1 AND l.%s = $2
	`, rel.table, rel.related.table, rel.relatedCol, rel.ownerCol, rel.relatedCol)

	entity, err := scanEntity(s.db.QueryRowContext(ctx, query, owner, related))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entity{}, ErrNotFound
		}
		return Entity{}, fmt.Errorf("lookup %s: %w", rel.table, err)
	}
	return entity, nil
}

// CreateLink inserts a link row in one statement. An existing pair
// returns ErrExists; a missing endpoint returns ErrNotFound via the
// foreign keys.
func (s *Store) CreateLink(ctx context.Context, rel Relation, owner, related string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
	`, rel.table, rel.ownerCol, rel.relatedCol)

	if _, err := s.db.ExecContext(ctx, query, owner, related); err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrExists
		case isForeignKeyViolation(err):
			return ErrNotFound
		}
		return fmt.Errorf("insert %s: %w", rel.table, err)
	}
	return nil
}

// DeleteLink removes a link row by pair.
func (s *Store) DeleteLink(ctx context.Context, rel Relation, owner, related string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2
	`, rel.table, rel.ownerCol, rel.relatedCol)

	result, err := s.db.ExecContext(ctx, query, owner, related)
	if err != nil {
		return fmt.Errorf("delete %s: %w", rel.table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", rel.table, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
