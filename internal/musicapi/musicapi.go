// Package musicapi talks to the external music catalog provider.
package musicapi

import (
	"context"
	"errors"
)

// ErrNotFound indicates the provider reports no resource for the id.
// In practice Spotify resolves almost anything, but the path is defined.
var ErrNotFound = errors.New("not found in catalog")

// Album is an album as described by the external catalog.
type Album struct {
	ExternalID  string  `json:"id"`
	Name        string  `json:"name"`
	Artist      string  `json:"artist"`
	ArtistID    string  `json:"artist_id,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	TrackCount  int     `json:"total_tracks,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	ExternalURL string  `json:"external_url,omitempty"`
	Tracks      []Track `json:"tracks,omitempty"`
}

// Track is a single album track with its duration in seconds.
type Track struct {
	ExternalID  string `json:"id"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	Duration    int    `json:"duration"`
	TrackNumber int    `json:"track_number,omitempty"`
	DiscNumber  int    `json:"disc_number,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
}

// Client is the catalog operations the application needs from a provider.
type Client interface {
	// SearchAlbums searches the catalog for albums matching the query.
	SearchAlbums(ctx context.Context, query string, limit int) ([]Album, error)

	// GetAlbum retrieves full album details including its track list.
	GetAlbum(ctx context.Context, albumID string) (*Album, error)
}
