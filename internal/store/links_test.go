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

func TestListLinkedTraversesBothSides(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT e.id, e.name, e.url, e.created_on, e.updated_on,
		       s.name, s.friendly_name, s.url
		FROM album_tracks l
		JOIN albums e ON e.id = l.album
		JOIN services s ON s.name = e.service
		WHERE l.track = $1
		ORDER BY e.id
		LIMIT $2 OFFSET $3
	`)).
		WithArgs("trk-1", 100, 0).
		WillReturnRows(entityRows().
			AddRow("alb-1", "Animals", "https://example.test/alb-1",
				now, now, "spotify", "Spotify", "https://spotify.test"))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(*)
		FROM album_tracks l
		WHERE l.track = $1
	`)).
		WithArgs("trk-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	albums, total, err := s.ListLinked(context.Background(), TrackAlbums, "trk-1", Page{Limit: 100})
	if err != nil {
		t.Fatalf("ListLinked error: %v", err)
	}
	if len(albums) != 1 || albums[0].ID != "alb-1" {
		t.Fatalf("unexpected rows: %+v", albums)
	}
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
}

func TestLinkedByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		FROM album_artists l
		JOIN artists e ON e.id = l.artist
	`)).
		WithArgs("alb-1", "art-9").
		WillReturnRows(entityRows())

	if _, err := s.LinkedByID(context.Background(), AlbumArtists, "alb-1", "art-9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateLinkDuplicatePair(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO album_tracks (album, track)
		VALUES ($1, $2)
	`)).
		WithArgs("alb-1", "trk-1").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if err := s.CreateLink(context.Background(), AlbumTracks, "alb-1", "trk-1"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestCreateLinkMissingEndpoint(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO track_artists (track, artist)
		VALUES ($1, $2)
	`)).
		WithArgs("trk-1", "missing").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	if err := s.CreateLink(context.Background(), TrackArtists, "trk-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteLinkNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM album_artists
		WHERE album = $1 AND artist = $2
	`)).
		WithArgs("alb-1", "art-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.DeleteLink(context.Background(), AlbumArtists, "alb-1", "art-9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
