package httpapi

import (
	"encoding/json"
	"net/http"

	"dizzie/internal/api"
	"dizzie/internal/store"
)

type createServiceRequest struct {
	Name         string `json:"name"`
	FriendlyName string `json:"friendlyName"`
	URL          string `json:"url"`
}

type updateServiceRequest struct {
	FriendlyName *string `json:"friendlyName"`
	URL          *string `json:"url"`
}

func decorateService(r *http.Request, service *store.Service) {
	service.Endpoint = api.BaseURL(r) + "/services/" + service.Name
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	filter := store.ServiceFilter{
		Name:         r.URL.Query().Get("name"),
		FriendlyName: r.URL.Query().Get("friendlyName"),
	}

	services, total, err := s.providers.List(r.Context(), filter, page)
	if err != nil {
		fail(w, r, err, "Service")
		return
	}

	for i := range services {
		decorateService(r, &services[i])
	}

	api.Paged(w, r, http.StatusOK, listMessage("Services", len(services)), services, apiPage(page), len(services), total)
}

func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	service, err := s.providers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, "Service")
		return
	}

	decorateService(r, &service)
	api.Data(w, r, http.StatusOK, "OK", service)
}

func (s *Server) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var req createServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Name == "" || req.FriendlyName == "" || req.URL == "" {
		api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
		return
	}

	service, err := s.providers.Create(r.Context(), store.Service{
		Name:         req.Name,
		FriendlyName: req.FriendlyName,
		URL:          req.URL,
	})
	if err != nil {
		fail(w, r, err, "Service")
		return
	}

	decorateService(r, &service)
	api.Data(w, r, http.StatusCreated, "Service Created", service)
}

func (s *Server) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	var req updateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
		return
	}

	service, err := s.providers.Update(r.Context(), r.PathValue("id"), store.ServicePatch{
		FriendlyName: req.FriendlyName,
		URL:          req.URL,
	})
	if err != nil {
		fail(w, r, err, "Service")
		return
	}

	decorateService(r, &service)
	api.Data(w, r, http.StatusOK, "Service Updated", service)
}

func (s *Server) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	if err := s.providers.Delete(r.Context(), r.PathValue("id")); err != nil {
		fail(w, r, err, "Service")
		return
	}
	api.NoContent(w)
}
