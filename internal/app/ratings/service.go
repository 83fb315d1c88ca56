// Package ratings coordinates rating upserts and queries.
package ratings

import (
	"context"

	"sleevenotes/internal/store"
)

// Store defines the persistence hooks for rating workflows.
type Store interface {
	UpsertRating(ctx context.Context, userID int64, rating store.Rating) (store.Rating, error)
	RatingByAlbum(ctx context.Context, userID int64, albumID string) (store.Rating, error)
	RatingsByUser(ctx context.Context, userID int64, limit int) ([]store.Rating, error)
}

// Service coordinates rating updates and queries.
type Service interface {
	Upsert(ctx context.Context, userID int64, rating store.Rating) (store.Rating, error)
	ByAlbum(ctx context.Context, userID int64, albumID string) (store.Rating, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]store.Rating, error)
}

type service struct {
	store Store
}

// New constructs a ratings Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Upsert(ctx context.Context, userID int64, rating store.Rating) (store.Rating, error) {
	if err := ctx.Err(); err != nil {
		return store.Rating{}, err
	}
	return s.store.UpsertRating(ctx, userID, rating)
}

func (s *service) ByAlbum(ctx context.Context, userID int64, albumID string) (store.Rating, error) {
	if err := ctx.Err(); err != nil {
		return store.Rating{}, err
	}
	return s.store.RatingByAlbum(ctx, userID, albumID)
}

func (s *service) ListByUser(ctx context.Context, userID int64, limit int) ([]store.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.RatingsByUser(ctx, userID, limit)
}
