package catalog

import (
	"context"
	"errors"
	"testing"

	"dizzie/internal/store"
)

type fakeStore struct {
	createEntity func(ctx context.Context, kind store.Kind, id, name, url, service string) error
	entityByID   func(ctx context.Context, kind store.Kind, id string) (store.Entity, error)
	createLink   func(ctx context.Context, rel store.Relation, owner, related string) error
	linkedByID   func(ctx context.Context, rel store.Relation, owner, related string) (store.Entity, error)
}

func (f *fakeStore) ListEntities(ctx context.Context, kind store.Kind, filter store.EntityFilter, page store.Page) ([]store.Entity, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) EntityByID(ctx context.Context, kind store.Kind, id string) (store.Entity, error) {
	return f.entityByID(ctx, kind, id)
}

func (f *fakeStore) CreateEntity(ctx context.Context, kind store.Kind, id, name, url, service string) error {
	return f.createEntity(ctx, kind, id, name, url, service)
}

func (f *fakeStore) UpdateEntity(ctx context.Context, kind store.Kind, id string, patch store.EntityPatch) error {
	return nil
}

func (f *fakeStore) DeleteEntity(ctx context.Context, kind store.Kind, id string) error {
	return nil
}

func (f *fakeStore) ListLinked(ctx context.Context, rel store.Relation, owner string, page store.Page) ([]store.Entity, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) LinkedByID(ctx context.Context, rel store.Relation, owner, related string) (store.Entity, error) {
	return f.linkedByID(ctx, rel, owner, related)
}

func (f *fakeStore) CreateLink(ctx context.Context, rel store.Relation, owner, related string) error {
	return f.createLink(ctx, rel, owner, related)
}

func (f *fakeStore) DeleteLink(ctx context.Context, rel store.Relation, owner, related string) error {
	return nil
}

func TestCreateReturnsCanonicalRow(t *testing.T) {
	fs := &fakeStore{
		createEntity: func(ctx context.Context, kind store.Kind, id, name, url, service string) error {
			return nil
		},
		entityByID: func(ctx context.Context, kind store.Kind, id string) (store.Entity, error) {
			return store.Entity{ID: id, Name: "Animals", Service: store.Service{Name: "spotify"}}, nil
		},
	}

	svc := New(fs)
	entity, err := svc.Create(context.Background(), store.Albums, CreateInput{
		ID: "alb-1", Name: "Animals", URL: "https://x.test/alb-1", Service: "spotify",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if entity.ID != "alb-1" || entity.Service.Name != "spotify" {
		t.Fatalf("unexpected entity: %+v", entity)
	}
}

func TestCreateStopsOnMissingService(t *testing.T) {
	fs := &fakeStore{
		createEntity: func(ctx context.Context, kind store.Kind, id, name, url, service string) error {
			return store.ErrServiceMissing
		},
		entityByID: func(ctx context.Context, kind store.Kind, id string) (store.Entity, error) {
			t.Fatal("re-read should not happen after a failed insert")
			return store.Entity{}, nil
		},
	}

	svc := New(fs)
	if _, err := svc.Create(context.Background(), store.Albums, CreateInput{ID: "alb-1"}); !errors.Is(err, store.ErrServiceMissing) {
		t.Fatalf("expected ErrServiceMissing, got %v", err)
	}
}

func TestLinkReturnsRelatedRow(t *testing.T) {
	fs := &fakeStore{
		createLink: func(ctx context.Context, rel store.Relation, owner, related string) error {
			return nil
		},
		linkedByID: func(ctx context.Context, rel store.Relation, owner, related string) (store.Entity, error) {
			return store.Entity{ID: related}, nil
		},
	}

	svc := New(fs)
	entity, err := svc.Link(context.Background(), store.AlbumTracks, "alb-1", "trk-1")
	if err != nil {
		t.Fatalf("Link error: %v", err)
	}
	if entity.ID != "trk-1" {
		t.Fatalf("unexpected entity: %+v", entity)
	}
}

func TestLinkPropagatesMissingEndpoint(t *testing.T) {
	fs := &fakeStore{
		createLink: func(ctx context.Context, rel store.Relation, owner, related string) error {
			return store.ErrNotFound
		},
	}

	svc := New(fs)
	if _, err := svc.Link(context.Background(), store.TrackArtists, "trk-1", "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
