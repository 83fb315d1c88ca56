// Package lists coordinates album list operations and their ownership rules.
package lists

import (
	"context"

	"sleevenotes/internal/store"
)

// Store captures the persistence needs for list workflows.
type Store interface {
	CreateList(ctx context.Context, userID int64, name, description string, isPublic bool) (store.List, error)
	ListByID(ctx context.Context, listID, requesterID int64) (store.List, error)
	ListsByUser(ctx context.Context, userID int64, limit int) ([]store.List, error)
	UpdateList(ctx context.Context, listID, userID int64, update store.ListUpdate) (store.List, error)
	DeleteList(ctx context.Context, listID, userID int64) error
	AddAlbum(ctx context.Context, listID, userID int64, album store.ListAlbum) error
	RemoveAlbum(ctx context.Context, listID, userID int64, albumID string) error
}

// Service coordinates list-related operations.
type Service interface {
	Create(ctx context.Context, userID int64, name, description string, isPublic bool) (store.List, error)
	Get(ctx context.Context, listID, requesterID int64) (store.List, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]store.List, error)
	Update(ctx context.Context, listID, userID int64, update store.ListUpdate) (store.List, error)
	Delete(ctx context.Context, listID, userID int64) error
	AddAlbum(ctx context.Context, listID, userID int64, album store.ListAlbum) error
	RemoveAlbum(ctx context.Context, listID, userID int64, albumID string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, userID int64, name, description string, isPublic bool) (store.List, error) {
	if err := ctx.Err(); err != nil {
		return store.List{}, err
	}
	return s.store.CreateList(ctx, userID, name, description, isPublic)
}

func (s *service) Get(ctx context.Context, listID, requesterID int64) (store.List, error) {
	if err := ctx.Err(); err != nil {
		return store.List{}, err
	}
	return s.store.ListByID(ctx, listID, requesterID)
}

func (s *service) ListByUser(ctx context.Context, userID int64, limit int) ([]store.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListsByUser(ctx, userID, limit)
}

func (s *service) Update(ctx context.Context, listID, userID int64, update store.ListUpdate) (store.List, error) {
	if err := ctx.Err(); err != nil {
		return store.List{}, err
	}
	return s.store.UpdateList(ctx, listID, userID, update)
}

func (s *service) Delete(ctx context.Context, listID, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteList(ctx, listID, userID)
}

func (s *service) AddAlbum(ctx context.Context, listID, userID int64, album store.ListAlbum) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.AddAlbum(ctx, listID, userID, album)
}

func (s *service) RemoveAlbum(ctx context.Context, listID, userID int64, albumID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RemoveAlbum(ctx, listID, userID, albumID)
}
