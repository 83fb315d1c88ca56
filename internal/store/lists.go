package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const maxListNameLength = 100

// List is a named collection of albums owned by a single user.
type List struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	IsPublic    bool        `json:"is_public"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Albums      []ListAlbum `json:"albums"`
}

// ListAlbum is a list membership with the album snapshot captured when the
// album was added.
type ListAlbum struct {
	ID         int64     `json:"id"`
	ListID     int64     `json:"list_id"`
	AlbumID    string    `json:"album_id"`
	AlbumName  string    `json:"album_name"`
	ArtistName string    `json:"artist_name"`
	AlbumImage string    `json:"album_image"`
	AddedAt    time.Time `json:"added_at"`
}

// ListUpdate carries the mutable list fields.
type ListUpdate struct {
	Name        string
	Description string
	IsPublic    bool
}

func validateListName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxListNameLength {
		return "", ErrInvalidList
	}
	return name, nil
}

// CreateList creates an empty list owned by the user.
func (s *Store) CreateList(ctx context.Context, userID int64, name, description string, isPublic bool) (List, error) {
	name, err := validateListName(name)
	if err != nil {
		return List{}, err
	}

	list := List{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(description),
		IsPublic:    isPublic,
		Albums:      []ListAlbum{},
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO lists (user_id, name, description, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, userID, list.Name, list.Description, isPublic).Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return List{}, fmt.Errorf("insert list: %w", err)
	}

	return list, nil
}

// ListByID returns a list with its member albums. Private lists are only
// visible to their owner.
func (s *Store) ListByID(ctx context.Context, listID, requesterID int64) (List, error) {
	var list List
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, COALESCE(description, ''), is_public, created_at, updated_at
		FROM lists
		WHERE id = $1
	`, listID).Scan(
		&list.ID, &list.UserID, &list.Name, &list.Description,
		&list.IsPublic, &list.CreatedAt, &list.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return List{}, ErrListNotFound
		}
		return List{}, fmt.Errorf("lookup list: %w", err)
	}

	if !list.IsPublic && list.UserID != requesterID {
		return List{}, ErrPrivateList
	}

	albums, err := s.listAlbums(ctx, list.ID)
	if err != nil {
		return List{}, err
	}
	list.Albums = albums

	return list, nil
}

// ListsByUser returns the user's own lists with members, most recent first.
// A limit of zero or less returns all of them.
func (s *Store) ListsByUser(ctx context.Context, userID int64, limit int) ([]List, error) {
	query := `
		SELECT id, user_id, name, COALESCE(description, ''), is_public, created_at, updated_at
		FROM lists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []List
	for rows.Next() {
		var list List
		if err := rows.Scan(
			&list.ID, &list.UserID, &list.Name, &list.Description,
			&list.IsPublic, &list.CreatedAt, &list.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}

	for i := range lists {
		albums, err := s.listAlbums(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Albums = albums
	}

	return lists, nil
}

// UpdateList applies name/description/visibility changes, owner-only.
func (s *Store) UpdateList(ctx context.Context, listID, userID int64, update ListUpdate) (List, error) {
	name, err := validateListName(update.Name)
	if err != nil {
		return List{}, err
	}

	if err := s.requireListOwner(ctx, listID, userID); err != nil {
		return List{}, err
	}

	var list List
	err = s.db.QueryRowContext(ctx, `
		UPDATE lists
		SET name = $1, description = $2, is_public = $3, updated_at = now()
		WHERE id = $4
		RETURNING id, user_id, name, COALESCE(description, ''), is_public, created_at, updated_at
	`, name, strings.TrimSpace(update.Description), update.IsPublic, listID).Scan(
		&list.ID, &list.UserID, &list.Name, &list.Description,
		&list.IsPublic, &list.CreatedAt, &list.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return List{}, ErrListNotFound
		}
		return List{}, fmt.Errorf("update list: %w", err)
	}

	albums, err := s.listAlbums(ctx, list.ID)
	if err != nil {
		return List{}, err
	}
	list.Albums = albums

	return list, nil
}

// DeleteList removes a list and, via the FK cascade, all its memberships.
func (s *Store) DeleteList(ctx context.Context, listID, userID int64) error {
	if err := s.requireListOwner(ctx, listID, userID); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM lists
		WHERE id = $1
	`, listID); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}

	return nil
}

// AddAlbum adds an album to a list, owner-only. The (list_id, album_id)
// uniqueness constraint rejects duplicates, so membership stays a true set
// even under concurrent adds.
func (s *Store) AddAlbum(ctx context.Context, listID, userID int64, album ListAlbum) error {
	if album.AlbumID == "" {
		return fmt.Errorf("album id is required")
	}

	if err := s.requireListOwner(ctx, listID, userID); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO list_albums (list_id, album_id, album_name, artist_name, album_image)
		VALUES ($1, $2, $3, $4, $5)
	`, listID, album.AlbumID, album.AlbumName, album.ArtistName, album.AlbumImage); err != nil {
		if isUniqueViolation(err) {
			return ErrAlbumInList
		}
		return fmt.Errorf("insert list album: %w", err)
	}

	return nil
}

// RemoveAlbum removes an album from a list, owner-only.
func (s *Store) RemoveAlbum(ctx context.Context, listID, userID int64, albumID string) error {
	if err := s.requireListOwner(ctx, listID, userID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM list_albums
		WHERE list_id = $1 AND album_id = $2
	`, listID, albumID)
	if err != nil {
		return fmt.Errorf("delete list album: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotInList
	}

	return nil
}

// requireListOwner rejects before any mutation so authorization failures
// never leave a partial change behind.
func (s *Store) requireListOwner(ctx context.Context, listID, userID int64) error {
	var ownerID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM lists
		WHERE id = $1
	`, listID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrListNotFound
		}
		return fmt.Errorf("lookup list owner: %w", err)
	}
	if ownerID != userID {
		return ErrNotListOwner
	}
	return nil
}

func (s *Store) listAlbums(ctx context.Context, listID int64) ([]ListAlbum, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, list_id, album_id, album_name, artist_name, COALESCE(album_image, ''), added_at
		FROM list_albums
		WHERE list_id = $1
		ORDER BY added_at ASC
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	albums := []ListAlbum{}
	for rows.Next() {
		var a ListAlbum
		if err := rows.Scan(&a.ID, &a.ListID, &a.AlbumID, &a.AlbumName, &a.ArtistName, &a.AlbumImage, &a.AddedAt); err != nil {
			return nil, fmt.Errorf("scan list album: %w", err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate list albums: %w", err)
	}

	return albums, nil
}
