package httpapi

import (
	"encoding/json"
	"net/http"

	"dizzie/internal/api"
	"dizzie/internal/auth"
	"dizzie/internal/store"
)

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Bio      *string `json:"bio"`
}

func decorateUser(r *http.Request, user *store.User) {
	user.Endpoint = api.BaseURL(r) + "/users/" + user.Username
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	filter := store.UserFilter{
		Username: r.URL.Query().Get("username"),
		Role:     r.URL.Query().Get("role"),
	}

	users, total, err := s.users.List(r.Context(), filter, page)
	if err != nil {
		fail(w, r, err, "User")
		return
	}

	for i := range users {
		decorateUser(r, &users[i])
	}

	api.Paged(w, r, http.StatusOK, listMessage("Users", len(users)), users, apiPage(page), len(users), total)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(w, r, err, "User")
		return
	}

	decorateUser(r, &user)
	api.Data(w, r, http.StatusOK, "OK", user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Password == "" || !auth.Role(req.Role).Valid() {
		api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
		return
	}

	user, err := s.users.Create(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		fail(w, r, err, "User")
		return
	}

	decorateUser(r, &user)
	api.Data(w, r, http.StatusCreated, "User Created", user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
		return
	}
	if req.Role != nil && !auth.Role(*req.Role).Valid() {
		api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
		return
	}

	user, err := s.users.Update(r.Context(), r.PathValue("id"), store.UserPatch{
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
		Surname:  req.Surname,
		Bio:      req.Bio,
	})
	if err != nil {
		fail(w, r, err, "User")
		return
	}

	decorateUser(r, &user)
	api.Data(w, r, http.StatusOK, "User Updated", user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		fail(w, r, err, "User")
		return
	}
	api.NoContent(w)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())

	user, err := s.users.Get(r.Context(), claims.Username)
	if err != nil {
		fail(w, r, err, "User")
		return
	}

	decorateUser(r, &user)
	api.Data(w, r, http.StatusOK, "OK", user)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
		return
	}

	// Role is never self-mutable.
	user, err := s.users.Update(r.Context(), claims.Username, store.UserPatch{
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
		Bio:      req.Bio,
	})
	if err != nil {
		fail(w, r, err, "User")
		return
	}

	decorateUser(r, &user)
	api.Data(w, r, http.StatusOK, "User Updated", user)
}

func (s *Server) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r.Context())

	if err := s.users.Delete(r.Context(), claims.Username); err != nil {
		fail(w, r, err, "User")
		return
	}
	api.NoContent(w)
}

type createFollowerRequest struct {
	Follower string `json:"follower"`
}

func decorateFollower(r *http.Request, follower *store.Follower) {
	follower.Endpoint = api.BaseURL(r) + "/users/" + follower.Username
}

func (s *Server) handleListFollowers(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	followers, total, err := s.followers.List(r.Context(), r.PathValue("user"), page)
	if err != nil {
		fail(w, r, err, "Follower")
		return
	}

	for i := range followers {
		decorateFollower(r, &followers[i])
	}

	api.Paged(w, r, http.StatusOK, listMessage("Followers", len(followers)), followers, apiPage(page), len(followers), total)
}

func (s *Server) handleGetFollower(w http.ResponseWriter, r *http.Request) {
	follower, err := s.followers.Get(r.Context(), r.PathValue("user"), r.PathValue("follower"))
	if err != nil {
		fail(w, r, err, "Follower")
		return
	}

	decorateFollower(r, &follower)
	api.Data(w, r, http.StatusOK, "OK", follower)
}

func (s *Server) handleCreateFollower(w http.ResponseWriter, r *http.Request) {
	var req createFollowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Follower == "" {
		api.Simple(w, r, http.StatusBadRequest, "Invalid Body")
		return
	}

	follower, err := s.followers.Follow(r.Context(), r.PathValue("user"), req.Follower)
	if err != nil {
		fail(w, r, err, "Follower")
		return
	}

	decorateFollower(r, &follower)
	api.Data(w, r, http.StatusCreated, "Follower Created", follower)
}

func (s *Server) handleDeleteFollower(w http.ResponseWriter, r *http.Request) {
	if err := s.followers.Unfollow(r.Context(), r.PathValue("user"), r.PathValue("follower")); err != nil {
		fail(w, r, err, "Follower")
		return
	}
	api.NoContent(w)
}
