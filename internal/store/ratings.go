package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Rating is a user's score and optional review for an external album.
// Album display fields are a snapshot captured at rating time so historical
// data renders without a live catalog lookup.
type Rating struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	AlbumID    string    `json:"album_id"`
	AlbumName  string    `json:"album_name"`
	ArtistName string    `json:"artist_name"`
	AlbumImage string    `json:"album_image"`
	Rating     int       `json:"rating"`
	Review     string    `json:"review"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func validateRating(r Rating) error {
	if r.AlbumID == "" {
		return fmt.Errorf("album id is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// UpsertRating records a rating, overwriting any existing rating the user has
// for the same album. The (user_id, album_id) uniqueness constraint makes
// concurrent submissions resolve to a single row, last writer wins.
func (s *Store) UpsertRating(ctx context.Context, userID int64, rating Rating) (Rating, error) {
	if err := validateRating(rating); err != nil {
		return Rating{}, err
	}

	rating.UserID = userID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO ratings (user_id, album_id, album_name, artist_name, album_image, rating, review)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, album_id) DO UPDATE
		SET album_name = EXCLUDED.album_name,
		    artist_name = EXCLUDED.artist_name,
		    album_image = EXCLUDED.album_image,
		    rating = EXCLUDED.rating,
		    review = EXCLUDED.review,
		    updated_at = now()
		RETURNING id, created_at, updated_at
	`, userID, rating.AlbumID, rating.AlbumName, rating.ArtistName, rating.AlbumImage, rating.Rating, rating.Review).
		Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		return Rating{}, fmt.Errorf("upsert rating: %w", err)
	}

	return rating, nil
}

// RatingByAlbum returns the user's rating for an album, if any.
func (s *Store) RatingByAlbum(ctx context.Context, userID int64, albumID string) (Rating, error) {
	var rating Rating
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, album_id, album_name, artist_name, COALESCE(album_image, ''), rating, COALESCE(review, ''), created_at, updated_at
		FROM ratings
		WHERE user_id = $1 AND album_id = $2
	`, userID, albumID).Scan(
		&rating.ID, &rating.UserID, &rating.AlbumID, &rating.AlbumName, &rating.ArtistName,
		&rating.AlbumImage, &rating.Rating, &rating.Review, &rating.CreatedAt, &rating.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Rating{}, ErrRatingNotFound
		}
		return Rating{}, fmt.Errorf("lookup rating: %w", err)
	}
	return rating, nil
}

// RatingsByUser returns the user's ratings, most recent first. A limit of
// zero or less returns all of them.
func (s *Store) RatingsByUser(ctx context.Context, userID int64, limit int) ([]Rating, error) {
	query := `
		SELECT id, user_id, album_id, album_name, artist_name, COALESCE(album_image, ''), rating, COALESCE(review, ''), created_at, updated_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []Rating
	for rows.Next() {
		var r Rating
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.AlbumID, &r.AlbumName, &r.ArtistName,
			&r.AlbumImage, &r.Rating, &r.Review, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}

	return ratings, nil
}
