// Package httpapi wires the REST routes to the underlying services and
// maps outcomes to envelope status/message pairs.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"dizzie/internal/api"
	"dizzie/internal/app/catalog"
	"dizzie/internal/app/users"
	"dizzie/internal/auth"
	"dizzie/internal/store"
)

// UserService captures the account operations needed by the handlers.
type UserService interface {
	Signup(ctx context.Context, username, password string) error
	Signin(ctx context.Context, username, password string) (users.Session, error)
	List(ctx context.Context, filter store.UserFilter, page store.Page) ([]store.User, int, error)
	Get(ctx context.Context, username string) (store.User, error)
	Create(ctx context.Context, username, password, role string) (store.User, error)
	Update(ctx context.Context, username string, patch store.UserPatch) (store.User, error)
	Delete(ctx context.Context, username string) error
}

// ProviderService exposes the external-service registry.
type ProviderService interface {
	List(ctx context.Context, filter store.ServiceFilter, page store.Page) ([]store.Service, int, error)
	Get(ctx context.Context, name string) (store.Service, error)
	Create(ctx context.Context, service store.Service) (store.Service, error)
	Update(ctx context.Context, name string, patch store.ServicePatch) (store.Service, error)
	Delete(ctx context.Context, name string) error
}

// CatalogService coordinates album, artist and track operations.
type CatalogService interface {
	List(ctx context.Context, kind store.Kind, filter store.EntityFilter, page store.Page) ([]store.Entity, int, error)
	Get(ctx context.Context, kind store.Kind, id string) (store.Entity, error)
	Create(ctx context.Context, kind store.Kind, in catalog.CreateInput) (store.Entity, error)
	Update(ctx context.Context, kind store.Kind, id string, patch store.EntityPatch) (store.Entity, error)
	Delete(ctx context.Context, kind store.Kind, id string) error

	ListLinked(ctx context.Context, rel store.Relation, owner string, page store.Page) ([]store.Entity, int, error)
	GetLinked(ctx context.Context, rel store.Relation, owner, related string) (store.Entity, error)
	Link(ctx context.Context, rel store.Relation, owner, related string) (store.Entity, error)
	Unlink(ctx context.Context, rel store.Relation, owner, related string) error
}

// FollowerService coordinates follow-edge operations.
type FollowerService interface {
	List(ctx context.Context, username string, page store.Page) ([]store.Follower, int, error)
	Get(ctx context.Context, username, follower string) (store.Follower, error)
	Follow(ctx context.Context, username, follower string) (store.Follower, error)
	Unfollow(ctx context.Context, username, follower string) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	tokens    *auth.Manager
	users     UserService
	providers ProviderService
	catalog   CatalogService
	followers FollowerService
}

// New configures a Server with the given services and token manager.
func New(tokens *auth.Manager, users UserService, providers ProviderService, catalog CatalogService, followers FollowerService) *Server {
	return &Server{
		tokens:    tokens,
		users:     users,
		providers: providers,
		catalog:   catalog,
		followers: followers,
	}
}

// resource binds a catalog kind to its route segment and nested links.
type resource struct {
	kind   store.Kind
	plural string
	links  []linkRoute
}

type linkRoute struct {
	rel     store.Relation
	segment string
	bodyKey string
}

var resources = []resource{
	{kind: store.Albums, plural: "albums", links: []linkRoute{
		{rel: store.AlbumTracks, segment: "tracks", bodyKey: "track"},
		{rel: store.AlbumArtists, segment: "artists", bodyKey: "artist"},
	}},
	{kind: store.Artists, plural: "artists"},
	{kind: store.Tracks, plural: "tracks", links: []linkRoute{
		{rel: store.TrackAlbums, segment: "albums", bodyKey: "album"},
		{rel: store.TrackArtists, segment: "artists", bodyKey: "artist"},
	}},
}

// Routes exposes the HTTP handlers under /api/v1.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	view := s.gate(auth.RoleGuest)
	authed := s.gate(auth.RoleUser)
	plus := s.gate(auth.RoleAdmin)

	mux.HandleFunc("POST /api/v1/signup", s.handleSignup)
	mux.HandleFunc("POST /api/v1/signin", s.handleSignin)

	mux.Handle("GET /api/v1/users", view(s.handleListUsers))
	mux.Handle("GET /api/v1/users/{id}", view(s.handleGetUser))
	mux.Handle("POST /api/v1/users", plus(s.handleCreateUser))
	mux.Handle("PUT /api/v1/users/{id}", plus(s.handleUpdateUser))
	mux.Handle("DELETE /api/v1/users/{id}", plus(s.handleDeleteUser))

	mux.Handle("GET /api/v1/me", view(s.handleMe))
	mux.Handle("PUT /api/v1/me", authed(s.handleUpdateMe))
	mux.Handle("DELETE /api/v1/me", authed(s.handleDeleteMe))

	mux.Handle("GET /api/v1/users/{user}/followers", view(s.handleListFollowers))
	mux.Handle("GET /api/v1/users/{user}/followers/{follower}", view(s.handleGetFollower))
	mux.Handle("POST /api/v1/users/{user}/followers", authed(s.handleCreateFollower))
	mux.Handle("DELETE /api/v1/users/{user}/followers/{follower}", authed(s.handleDeleteFollower))

	mux.Handle("GET /api/v1/services", view(s.handleListServices))
	mux.Handle("GET /api/v1/services/{id}", view(s.handleGetService))
	mux.Handle("POST /api/v1/services", plus(s.handleCreateService))
	mux.Handle("PUT /api/v1/services/{id}", plus(s.handleUpdateService))
	mux.Handle("DELETE /api/v1/services/{id}", plus(s.handleDeleteService))

	for _, res := range resources {
		base := "/api/v1/" + res.plural
		mux.Handle("GET "+base, view(s.handleListEntities(res)))
		mux.Handle("GET "+base+"/{id}", view(s.handleGetEntity(res)))
		mux.Handle("POST "+base, plus(s.handleCreateEntity(res)))
		mux.Handle("PUT "+base+"/{id}", plus(s.handleUpdateEntity(res)))
		mux.Handle("DELETE "+base+"/{id}", plus(s.handleDeleteEntity(res)))

		for _, link := range res.links {
			nested := base + "/{id}/" + link.segment
			mux.Handle("GET "+nested, view(s.handleListLinked(link)))
			mux.Handle("GET "+nested+"/{linked}", view(s.handleGetLinked(link)))
			mux.Handle("POST "+nested, plus(s.handleCreateLink(link)))
			mux.Handle("DELETE "+nested+"/{linked}", plus(s.handleDeleteLink(link)))
		}
	}

	return mux
}

func (s *Server) gate(min auth.Role) func(http.HandlerFunc) http.Handler {
	return func(h http.HandlerFunc) http.Handler {
		return s.tokens.Require(min, h)
	}
}

// fail translates service errors into envelope responses. Unrecognized
// errors are logged and reported as a generic 500.
func fail(w http.ResponseWriter, r *http.Request, err error, label string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		api.Simple(w, r, http.StatusNotFound, label+" Not Found")
	case errors.Is(err, store.ErrExists):
		api.Simple(w, r, http.StatusConflict, label+" Already Exists")
	case errors.Is(err, store.ErrServiceMissing):
		api.Simple(w, r, http.StatusNotFound, "Service Not Found")
	case errors.Is(err, store.ErrInvalidCredentials):
		api.Simple(w, r, http.StatusUnauthorized, "Invalid Credentials")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		api.Simple(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}

// listMessage unifies the empty-list reply across resources.
func listMessage(label string, count int) string {
	if count == 0 {
		return "No " + label
	}
	return "OK"
}

func parsePage(w http.ResponseWriter, r *http.Request) (store.Page, bool) {
	page, err := api.ParsePage(r.URL.Query())
	if err != nil {
		api.Simple(w, r, http.StatusBadRequest, "Invalid Query")
		return store.Page{}, false
	}
	return store.Page{Limit: page.Limit, Offset: page.Offset}, true
}

func apiPage(page store.Page) api.Page {
	return api.Page{Limit: page.Limit, Offset: page.Offset}
}
