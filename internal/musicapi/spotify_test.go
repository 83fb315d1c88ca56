package musicapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, apiHandler http.HandlerFunc) (*SpotifyClient, *int) {
	t.Helper()

	tokenCalls := 0
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		if r.Method != http.MethodPost {
			t.Errorf("token request used method %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "Basic ") {
			t.Errorf("token request missing basic auth, got %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenServer.Close)

	apiServer := httptest.NewServer(apiHandler)
	t.Cleanup(apiServer.Close)

	c := NewSpotifyClient("id", "secret")
	c.tokenURL = tokenServer.URL
	c.apiURL = apiServer.URL

	return c, &tokenCalls
}

func TestSearchAlbums(t *testing.T) {
	c, tokenCalls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "radiohead" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.URL.Query().Get("type"); got != "album" {
			t.Errorf("unexpected type %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"albums": {"items": [{
				"id": "alb-1",
				"name": "OK Computer",
				"artists": [{"id": "art-1", "name": "Radiohead"}],
				"release_date": "1997-05-21",
				"total_tracks": 12,
				"images": [{"url": "https://img/large", "height": 640, "width": 640}],
				"external_urls": {"spotify": "https://open.spotify.com/album/alb-1"}
			}]}
		}`))
	})

	albums, err := c.SearchAlbums(context.Background(), "radiohead", 20)
	if err != nil {
		t.Fatalf("SearchAlbums error: %v", err)
	}

	if len(albums) != 1 {
		t.Fatalf("expected 1 album, got %d", len(albums))
	}
	album := albums[0]
	if album.ExternalID != "alb-1" || album.Name != "OK Computer" || album.Artist != "Radiohead" {
		t.Fatalf("unexpected album: %+v", album)
	}
	if album.ImageURL != "https://img/large" {
		t.Fatalf("unexpected image url %q", album.ImageURL)
	}
	if *tokenCalls != 1 {
		t.Fatalf("expected 1 token call, got %d", *tokenCalls)
	}

	// Second search reuses the cached token.
	if _, err := c.SearchAlbums(context.Background(), "radiohead", 20); err != nil {
		t.Fatalf("second SearchAlbums error: %v", err)
	}
	if *tokenCalls != 1 {
		t.Fatalf("expected cached token to be reused, got %d token calls", *tokenCalls)
	}
}

func TestGetAlbumWithTracks(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/albums/alb-1") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "alb-1",
			"name": "OK Computer",
			"artists": [{"id": "art-1", "name": "Radiohead"}],
			"release_date": "1997-05-21",
			"total_tracks": 2,
			"images": [{"url": "https://img", "height": 640, "width": 640}],
			"external_urls": {"spotify": "https://open.spotify.com/album/alb-1"},
			"tracks": {"items": [
				{"id": "trk-1", "name": "Airbag", "artists": [{"id": "art-1", "name": "Radiohead"}], "duration_ms": 284000, "track_number": 1, "disc_number": 1},
				{"id": "trk-2", "name": "Paranoid Android", "artists": [{"id": "art-1", "name": "Radiohead"}], "duration_ms": 383000, "track_number": 2, "disc_number": 1}
			]}
		}`))
	})

	album, err := c.GetAlbum(context.Background(), "alb-1")
	if err != nil {
		t.Fatalf("GetAlbum error: %v", err)
	}

	if len(album.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(album.Tracks))
	}
	if album.Tracks[0].Duration != 284 {
		t.Fatalf("expected duration in seconds, got %d", album.Tracks[0].Duration)
	}
}

func TestGetAlbumNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetAlbum(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchAlbumsUpstreamFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.SearchAlbums(context.Background(), "radiohead", 20); err == nil {
		t.Fatal("expected error from failing provider")
	}
}
