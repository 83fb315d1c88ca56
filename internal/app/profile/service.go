// Package profile composes a user's identity, ratings, and lists into a
// single read view.
package profile

import (
	"context"

	"sleevenotes/internal/store"
)

// UserStore resolves user ids to accounts.
type UserStore interface {
	UserByID(ctx context.Context, id int64) (store.User, error)
}

// RatingStore lists a user's ratings.
type RatingStore interface {
	RatingsByUser(ctx context.Context, userID int64, limit int) ([]store.Rating, error)
}

// ListStore lists a user's lists.
type ListStore interface {
	ListsByUser(ctx context.Context, userID int64, limit int) ([]store.List, error)
}

// Profile is the aggregated dashboard view for one user.
type Profile struct {
	User    store.User     `json:"user"`
	Ratings []store.Rating `json:"ratings"`
	Lists   []store.List   `json:"lists"`
}

// Service aggregates profile reads.
type Service interface {
	Profile(ctx context.Context, userID int64) (Profile, error)
}

type service struct {
	users   UserStore
	ratings RatingStore
	lists   ListStore
}

// New constructs a profile Service over the three stores it composes.
func New(users UserStore, ratings RatingStore, lists ListStore) Service {
	return &service{users: users, ratings: ratings, lists: lists}
}

func (s *service) Profile(ctx context.Context, userID int64) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	ratings, err := s.ratings.RatingsByUser(ctx, userID, 0)
	if err != nil {
		return Profile{}, err
	}

	lists, err := s.lists.ListsByUser(ctx, userID, 0)
	if err != nil {
		return Profile{}, err
	}

	if ratings == nil {
		ratings = []store.Rating{}
	}
	if lists == nil {
		lists = []store.List{}
	}

	return Profile{User: user, Ratings: ratings, Lists: lists}, nil
}
