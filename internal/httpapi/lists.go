package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sleevenotes/internal/store"
)

type listRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

type listAlbumRequest struct {
	AlbumID    string `json:"albumId"`
	AlbumName  string `json:"albumName"`
	ArtistName string `json:"artistName"`
	AlbumImage string `json:"albumImage"`
}

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request, user store.User) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid limit parameter")
		return
	}

	lists, err := s.lists.ListByUser(r.Context(), user.ID, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if lists == nil {
		lists = []store.List{}
	}

	respond(w, http.StatusOK, lists)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request, user store.User) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	list, err := s.lists.Create(r.Context(), user.ID, req.Name, req.Description, req.IsPublic)
	if err != nil {
		s.writeError(w, err)
		return
	}

	respond(w, http.StatusCreated, list)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request, user store.User) {
	listID, err := parseListID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	list, err := s.lists.Get(r.Context(), listID, user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	respond(w, http.StatusOK, list)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request, user store.User) {
	listID, err := parseListID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	list, err := s.lists.Update(r.Context(), listID, user.ID, store.ListUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	respond(w, http.StatusOK, list)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request, user store.User) {
	listID, err := parseListID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	if err := s.lists.Delete(r.Context(), listID, user.ID); err != nil {
		s.writeError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "list deleted")
}

func (s *Server) handleAddAlbum(w http.ResponseWriter, r *http.Request, user store.User) {
	listID, err := parseListID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	var req listAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.AlbumID == "" {
		respondError(w, http.StatusBadRequest, "albumId is required")
		return
	}

	if err := s.lists.AddAlbum(r.Context(), listID, user.ID, store.ListAlbum{
		AlbumID:    req.AlbumID,
		AlbumName:  req.AlbumName,
		ArtistName: req.ArtistName,
		AlbumImage: req.AlbumImage,
	}); err != nil {
		s.writeError(w, err)
		return
	}

	respondMessage(w, http.StatusCreated, "album added to list")
}

func (s *Server) handleRemoveAlbum(w http.ResponseWriter, r *http.Request, user store.User) {
	listID, err := parseListID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid list id")
		return
	}

	albumID := r.PathValue("albumId")
	if albumID == "" {
		respondError(w, http.StatusBadRequest, "invalid album id")
		return
	}

	if err := s.lists.RemoveAlbum(r.Context(), listID, user.ID, albumID); err != nil {
		s.writeError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "album removed from list")
}

func parseListID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, strconv.ErrSyntax
	}
	return limit, nil
}
