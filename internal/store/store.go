package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUserExists signals the username or email is already taken.
	ErrUserExists = errors.New("account already exists")
	// ErrUserNotFound indicates no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRating indicates a score outside the accepted range.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrRatingNotFound indicates the user has not rated the album.
	ErrRatingNotFound = errors.New("rating not found")

	// ErrInvalidList indicates a missing or over-long list name.
	ErrInvalidList = errors.New("list name is required and must be 100 characters or fewer")
	// ErrListNotFound indicates no list matches the id.
	ErrListNotFound = errors.New("list not found")
	// ErrNotListOwner indicates the requesting user does not own the list.
	ErrNotListOwner = errors.New("not the list owner")
	// ErrPrivateList indicates a private list requested by a non-owner.
	ErrPrivateList = errors.New("list is private")
	// ErrAlbumInList indicates the album is already a member of the list.
	ErrAlbumInList = errors.New("album already in list")
	// ErrAlbumNotInList indicates the album is not a member of the list.
	ErrAlbumNotInList = errors.New("album not in list")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
