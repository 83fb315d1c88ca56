package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// User is a registered account. PasswordHash never leaves the backend.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatar_url"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	PasswordHash string    `json:"-"`
}

// UserUpdate carries profile fields to overwrite. A non-empty PasswordHash
// replaces the stored credential.
type UserUpdate struct {
	Username     string
	Email        string
	AvatarURL    string
	Description  string
	PasswordHash string
}

// CreateUser registers a new user with a pre-hashed credential.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash, avatarURL string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || passwordHash == "" {
		return User{}, fmt.Errorf("username, email and password are required")
	}

	user := User{
		Username:     username,
		Email:        email,
		AvatarURL:    avatarURL,
		PasswordHash: passwordHash,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, username, email, passwordHash, avatarURL).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrUserExists
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// UserByEmail looks up an account by email, including its password hash.
func (s *Store) UserByEmail(ctx context.Context, email string) (User, error) {
	return s.userBy(ctx, "email = $1", strings.ToLower(strings.TrimSpace(email)))
}

// UserByID resolves a user id to a live account record.
func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	return s.userBy(ctx, "id = $1", id)
}

func (s *Store) userBy(ctx context.Context, where string, arg any) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, COALESCE(avatar_url, ''), COALESCE(description, ''), created_at, updated_at
		FROM users
		WHERE `+where, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.AvatarURL, &user.Description, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// UpdateUser overwrites profile fields and returns the updated record.
func (s *Store) UpdateUser(ctx context.Context, id int64, update UserUpdate) (User, error) {
	username := strings.TrimSpace(update.Username)
	email := strings.ToLower(strings.TrimSpace(update.Email))
	if username == "" || email == "" {
		return User{}, fmt.Errorf("username and email are required")
	}

	query := `
		UPDATE users
		SET username = $1, email = $2, avatar_url = $3, description = $4, updated_at = now()
		WHERE id = $5
		RETURNING id, username, email, password_hash, COALESCE(avatar_url, ''), COALESCE(description, ''), created_at, updated_at
	`
	args := []any{username, email, update.AvatarURL, update.Description, id}
	if update.PasswordHash != "" {
		query = `
		UPDATE users
		SET username = $1, email = $2, avatar_url = $3, description = $4, password_hash = $5, updated_at = now()
		WHERE id = $6
		RETURNING id, username, email, password_hash, COALESCE(avatar_url, ''), COALESCE(description, ''), created_at, updated_at
	`
		args = []any{username, email, update.AvatarURL, update.Description, update.PasswordHash, id}
	}

	var user User
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.AvatarURL, &user.Description, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return User{}, ErrUserExists
		}
		return User{}, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}
