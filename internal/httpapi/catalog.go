package httpapi

import (
	"encoding/json"
	"net/http"

	"dizzie/internal/api"
	"dizzie/internal/app/catalog"
	"dizzie/internal/store"
)

type createEntityRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Service string `json:"service"`
}

type updateEntityRequest struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
}

// decorateEntity fills the derived endpoint URLs on a catalog row. The
// plural segment names the collection the row lives under.
func decorateEntity(r *http.Request, plural string, entity *store.Entity) {
	base := api.BaseURL(r)
	entity.Endpoint = base + "/" + plural + "/" + entity.ID
	entity.Service.Endpoint = base + "/services/" + entity.Service.Name
}

func (s *Server) handleListEntities(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := parsePage(w, r)
		if !ok {
			return
		}

		filter := store.EntityFilter{
			Name:    r.URL.Query().Get("name"),
			Service: r.URL.Query().Get("service"),
		}

		entities, total, err := s.catalog.List(r.Context(), res.kind, filter, page)
		if err != nil {
			fail(w, r, err, res.kind.Label())
			return
		}

		for i := range entities {
			decorateEntity(r, res.plural, &entities[i])
		}

		api.Paged(w, r, http.StatusOK, listMessage(res.kind.Label()+"s", len(entities)),
			entities, apiPage(page), len(entities), total)
	}
}

func (s *Server) handleGetEntity(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity, err := s.catalog.Get(r.Context(), res.kind, r.PathValue("id"))
		if err != nil {
			fail(w, r, err, res.kind.Label())
			return
		}

		decorateEntity(r, res.plural, &entity)
		api.Data(w, r, http.StatusOK, "OK", entity)
	}
}

func (s *Server) handleCreateEntity(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEntityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
			req.ID == "" || req.Name == "" || req.URL == "" || req.Service == "" {
			api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
			return
		}

		entity, err := s.catalog.Create(r.Context(), res.kind, catalog.CreateInput{
			ID:      req.ID,
			Name:    req.Name,
			URL:     req.URL,
			Service: req.Service,
		})
		if err != nil {
			fail(w, r, err, res.kind.Label())
			return
		}

		decorateEntity(r, res.plural, &entity)
		api.Data(w, r, http.StatusCreated, res.kind.Label()+" Created", entity)
	}
}

func (s *Server) handleUpdateEntity(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEntityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
			return
		}

		entity, err := s.catalog.Update(r.Context(), res.kind, r.PathValue("id"), store.EntityPatch{
			Name: req.Name,
			URL:  req.URL,
		})
		if err != nil {
			fail(w, r, err, res.kind.Label())
			return
		}

		decorateEntity(r, res.plural, &entity)
		api.Data(w, r, http.StatusOK, res.kind.Label()+" Updated", entity)
	}
}

func (s *Server) handleDeleteEntity(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.catalog.Delete(r.Context(), res.kind, r.PathValue("id")); err != nil {
			fail(w, r, err, res.kind.Label())
			return
		}
		api.NoContent(w)
	}
}

func (s *Server) handleListLinked(link linkRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := parsePage(w, r)
		if !ok {
			return
		}

		entities, total, err := s.catalog.ListLinked(r.Context(), link.rel, r.PathValue("id"), page)
		if err != nil {
			fail(w, r, err, link.rel.Related().Label())
			return
		}

		for i := range entities {
			decorateEntity(r, link.segment, &entities[i])
		}

		api.Paged(w, r, http.StatusOK, listMessage(link.rel.Related().Label()+"s", len(entities)),
			entities, apiPage(page), len(entities), total)
	}
}

func (s *Server) handleGetLinked(link linkRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity, err := s.catalog.GetLinked(r.Context(), link.rel, r.PathValue("id"), r.PathValue("linked"))
		if err != nil {
			fail(w, r, err, link.rel.Related().Label())
			return
		}

		decorateEntity(r, link.segment, &entity)
		api.Data(w, r, http.StatusOK, "OK", entity)
	}
}

func (s *Server) handleCreateLink(link linkRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body[link.bodyKey] == "" {
			api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
			return
		}

		entity, err := s.catalog.Link(r.Context(), link.rel, r.PathValue("id"), body[link.bodyKey])
		if err != nil {
			fail(w, r, err, link.rel.Related().Label())
			return
		}

		decorateEntity(r, link.segment, &entity)
		api.Data(w, r, http.StatusCreated, link.rel.Related().Label()+" Added", entity)
	}
}

func (s *Server) handleDeleteLink(link linkRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.catalog.Unlink(r.Context(), link.rel, r.PathValue("id"), r.PathValue("linked")); err != nil {
			fail(w, r, err, link.rel.Related().Label())
			return
		}
		api.NoContent(w)
	}
}
