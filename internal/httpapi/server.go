// Package httpapi wires HTTP handlers to the underlying services and shapes
// every response into the {success, data, message} envelope.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"sleevenotes/internal/app/profile"
	"sleevenotes/internal/app/search"
	"sleevenotes/internal/app/users"
	"sleevenotes/internal/auth"
	"sleevenotes/internal/musicapi"
	"sleevenotes/internal/store"
)

// UserService captures the account operations needed by the HTTP handlers.
type UserService interface {
	Register(ctx context.Context, params users.RegisterParams) (store.User, string, error)
	Login(ctx context.Context, email, password string) (store.User, string, error)
	Verify(ctx context.Context, token string) (store.User, error)
	UpdateProfile(ctx context.Context, userID int64, update users.ProfileUpdate) (store.User, error)
}

// SearchService proxies catalog search and album detail lookups.
type SearchService interface {
	Search(ctx context.Context, query string) ([]musicapi.Album, error)
	Album(ctx context.Context, albumID string) (*musicapi.Album, error)
}

// RatingService coordinates rating workflows.
type RatingService interface {
	Upsert(ctx context.Context, userID int64, rating store.Rating) (store.Rating, error)
	ByAlbum(ctx context.Context, userID int64, albumID string) (store.Rating, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]store.Rating, error)
}

// ListService coordinates list workflows.
type ListService interface {
	Create(ctx context.Context, userID int64, name, description string, isPublic bool) (store.List, error)
	Get(ctx context.Context, listID, requesterID int64) (store.List, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]store.List, error)
	Update(ctx context.Context, listID, userID int64, update store.ListUpdate) (store.List, error)
	Delete(ctx context.Context, listID, userID int64) error
	AddAlbum(ctx context.Context, listID, userID int64, album store.ListAlbum) error
	RemoveAlbum(ctx context.Context, listID, userID int64, albumID string) error
}

// ProfileService aggregates the profile read view.
type ProfileService interface {
	Profile(ctx context.Context, userID int64) (profile.Profile, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users    UserService
	search   SearchService
	ratings  RatingService
	lists    ListService
	profiles ProfileService
}

// New configures a Server with the given services.
func New(users UserService, search SearchService, ratings RatingService, lists ListService, profiles ProfileService) *Server {
	return &Server{
		users:    users,
		search:   search,
		ratings:  ratings,
		lists:    lists,
		profiles: profiles,
	}
}

// Routes exposes the HTTP handlers for the REST API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/verify", s.withUser(s.handleVerify))

	// Catalog routes
	mux.HandleFunc("GET /api/spotify/search", s.withUser(s.handleSearch))
	mux.HandleFunc("GET /api/spotify/albums/{id}", s.withUser(s.handleAlbumDetail))

	// Rating routes
	mux.HandleFunc("POST /api/ratings", s.withUser(s.handleUpsertRating))
	mux.HandleFunc("GET /api/ratings/album/{id}", s.withUser(s.handleRatingByAlbum))

	// Profile routes
	mux.HandleFunc("GET /api/profile", s.withUser(s.handleProfile))
	mux.HandleFunc("GET /api/profile/ratings", s.withUser(s.handleProfileRatings))
	mux.HandleFunc("PUT /api/user/profile", s.withUser(s.handleUpdateProfile))

	// List routes
	mux.HandleFunc("GET /api/lists", s.withUser(s.handleListLists))
	mux.HandleFunc("POST /api/lists", s.withUser(s.handleCreateList))
	mux.HandleFunc("GET /api/lists/{id}", s.withUser(s.handleGetList))
	mux.HandleFunc("PUT /api/lists/{id}", s.withUser(s.handleUpdateList))
	mux.HandleFunc("DELETE /api/lists/{id}", s.withUser(s.handleDeleteList))
	mux.HandleFunc("POST /api/lists/{id}/albums", s.withUser(s.handleAddAlbum))
	mux.HandleFunc("DELETE /api/lists/{id}/albums/{albumId}", s.withUser(s.handleRemoveAlbum))

	return mux
}

// withUser resolves the bearer token to a live user and hands it to the
// wrapped handler, so handlers never consult ambient auth state themselves.
func (s *Server) withUser(next func(http.ResponseWriter, *http.Request, store.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := parseBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := s.users.Verify(r.Context(), token)
		if err != nil {
			s.writeError(w, err)
			return
		}

		next(w, r, user)
	}
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps service errors onto HTTP statuses with the envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidRating),
		errors.Is(err, store.ErrInvalidList),
		errors.Is(err, users.ErrPasswordPolicy),
		errors.Is(err, users.ErrPasswordConfirm):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrPasswordMismatch):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrNotListOwner),
		errors.Is(err, store.ErrPrivateList):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrRatingNotFound),
		errors.Is(err, store.ErrListNotFound),
		errors.Is(err, store.ErrAlbumNotInList),
		errors.Is(err, musicapi.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrAlbumInList):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, search.ErrProviderUnavailable):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
