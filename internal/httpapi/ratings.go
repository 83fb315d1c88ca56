package httpapi

import (
	"encoding/json"
	"net/http"

	"sleevenotes/internal/store"
)

type ratingRequest struct {
	AlbumID    string `json:"albumId"`
	AlbumName  string `json:"albumName"`
	ArtistName string `json:"artistName"`
	AlbumImage string `json:"albumImage"`
	Rating     int    `json:"rating"`
	Review     string `json:"review"`
}

func (s *Server) handleUpsertRating(w http.ResponseWriter, r *http.Request, user store.User) {
	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	rating, err := s.ratings.Upsert(r.Context(), user.ID, store.Rating{
		AlbumID:    req.AlbumID,
		AlbumName:  req.AlbumName,
		ArtistName: req.ArtistName,
		AlbumImage: req.AlbumImage,
		Rating:     req.Rating,
		Review:     req.Review,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	respond(w, http.StatusOK, rating)
}

func (s *Server) handleRatingByAlbum(w http.ResponseWriter, r *http.Request, user store.User) {
	rating, err := s.ratings.ByAlbum(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	respond(w, http.StatusOK, rating)
}
