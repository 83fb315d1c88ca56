package httpapi

import (
	"errors"
	"net/http"

	"sleevenotes/internal/app/search"
	"sleevenotes/internal/musicapi"
	"sleevenotes/internal/store"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, _ store.User) {
	albums, err := s.search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}

	respond(w, http.StatusOK, albums)
}

func (s *Server) handleAlbumDetail(w http.ResponseWriter, r *http.Request, _ store.User) {
	album, err := s.search.Album(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}

	respond(w, http.StatusOK, album)
}

// writeCatalogError treats any provider failure other than a clean miss as
// an upstream error.
func (s *Server) writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, musicapi.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, search.ErrProviderUnavailable):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		respondError(w, http.StatusBadGateway, "catalog lookup failed")
	}
}
