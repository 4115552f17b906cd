package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"dizzie/internal/api"
	"dizzie/internal/store"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
		return
	}

	if err := s.users.Signup(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, store.ErrExists) {
			api.Simple(w, r, http.StatusConflict, "User Already Exists")
			return
		}
		fail(w, r, err, "User")
		return
	}

	api.Simple(w, r, http.StatusCreated, "User Created")
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
		return
	}

	session, err := s.users.Signin(r.Context(), req.Username, req.Password)
	if err != nil {
		fail(w, r, err, "User")
		return
	}

	api.Data(w, r, http.StatusOK, "OK", session)
}
