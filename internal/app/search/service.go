// Package search proxies catalog lookups to the external music provider.
package search

import (
	"context"
	"errors"
	"strings"

	"sleevenotes/internal/musicapi"
)

// ErrProviderUnavailable indicates no catalog provider is configured.
var ErrProviderUnavailable = errors.New("catalog provider not configured")

const searchLimit = 20

// Service exposes catalog search and album detail lookups.
type Service interface {
	Search(ctx context.Context, query string) ([]musicapi.Album, error)
	Album(ctx context.Context, albumID string) (*musicapi.Album, error)
}

type service struct {
	client musicapi.Client
}

// New constructs a search Service over the given catalog client. A nil
// client is accepted so the rest of the API keeps working without
// provider credentials.
func New(client musicapi.Client) Service {
	return &service{client: client}
}

func (s *service) Search(ctx context.Context, query string) ([]musicapi.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A blank query never reaches the provider.
	query = strings.TrimSpace(query)
	if query == "" {
		return []musicapi.Album{}, nil
	}

	if s.client == nil {
		return nil, ErrProviderUnavailable
	}

	return s.client.SearchAlbums(ctx, query, searchLimit)
}

func (s *service) Album(ctx context.Context, albumID string) (*musicapi.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.client == nil {
		return nil, ErrProviderUnavailable
	}

	return s.client.GetAlbum(ctx, albumID)
}
