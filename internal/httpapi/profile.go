package httpapi

import (
	"encoding/json"
	"net/http"

	"sleevenotes/internal/app/users"
	"sleevenotes/internal/store"
)

type profileUpdateRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Description     string `json:"description"`
	AvatarURL       string `json:"avatar_url"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, user store.User) {
	view, err := s.profiles.Profile(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	respond(w, http.StatusOK, view)
}

func (s *Server) handleProfileRatings(w http.ResponseWriter, r *http.Request, user store.User) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid limit parameter")
		return
	}

	ratings, err := s.ratings.ListByUser(r.Context(), user.ID, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ratings == nil {
		ratings = []store.Rating{}
	}

	respond(w, http.StatusOK, ratings)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, user store.User) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	updated, err := s.users.UpdateProfile(r.Context(), user.ID, users.ProfileUpdate{
		Username:        req.Username,
		Email:           req.Email,
		Description:     req.Description,
		AvatarURL:       req.AvatarURL,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	respond(w, http.StatusOK, updated)
}
