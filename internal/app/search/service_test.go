package search

import (
	"context"
	"errors"
	"testing"

	"sleevenotes/internal/musicapi"
)

type countingClient struct {
	searchCalls int
	albumCalls  int

	albums  []musicapi.Album
	album   *musicapi.Album
	err     error
	lastQ   string
	lastID  string
	lastLim int
}

func (c *countingClient) SearchAlbums(ctx context.Context, query string, limit int) ([]musicapi.Album, error) {
	c.searchCalls++
	c.lastQ = query
	c.lastLim = limit
	return c.albums, c.err
}

func (c *countingClient) GetAlbum(ctx context.Context, albumID string) (*musicapi.Album, error) {
	c.albumCalls++
	c.lastID = albumID
	return c.album, c.err
}

func TestSearchEmptyQuerySkipsProvider(t *testing.T) {
	client := &countingClient{}
	svc := New(client)

	for _, query := range []string{"", "   ", "\t\n"} {
		albums, err := svc.Search(context.Background(), query)
		if err != nil {
			t.Fatalf("query %q: unexpected error %v", query, err)
		}
		if len(albums) != 0 {
			t.Fatalf("query %q: expected empty result, got %d albums", query, len(albums))
		}
	}

	if client.searchCalls != 0 {
		t.Fatalf("expected provider untouched for blank queries, got %d calls", client.searchCalls)
	}
}

func TestSearchForwardsTrimmedQuery(t *testing.T) {
	client := &countingClient{albums: []musicapi.Album{{ExternalID: "alb-1", Name: "OK Computer"}}}
	svc := New(client)

	albums, err := svc.Search(context.Background(), "  radiohead ")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if client.searchCalls != 1 {
		t.Fatalf("expected 1 provider call, got %d", client.searchCalls)
	}
	if client.lastQ != "radiohead" {
		t.Fatalf("expected trimmed query, got %q", client.lastQ)
	}
	if len(albums) != 1 || albums[0].ExternalID != "alb-1" {
		t.Fatalf("unexpected result: %+v", albums)
	}
}

func TestSearchWithoutProvider(t *testing.T) {
	svc := New(nil)

	if _, err := svc.Search(context.Background(), "radiohead"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	// Blank queries still succeed with no provider at all.
	if _, err := svc.Search(context.Background(), " "); err != nil {
		t.Fatalf("blank query should not need a provider, got %v", err)
	}
}

func TestAlbumPropagatesNotFound(t *testing.T) {
	client := &countingClient{err: musicapi.ErrNotFound}
	svc := New(client)

	if _, err := svc.Album(context.Background(), "missing"); !errors.Is(err, musicapi.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if client.lastID != "missing" {
		t.Fatalf("expected album id forwarded, got %q", client.lastID)
	}
}
