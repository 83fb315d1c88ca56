// Package users coordinates account registration, login, and profile edits.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sleevenotes/internal/auth"
	"sleevenotes/internal/store"
)

// ErrPasswordPolicy indicates the password does not meet the minimum policy.
var ErrPasswordPolicy = fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)

// ErrPasswordConfirm indicates password and confirmation differ.
var ErrPasswordConfirm = errors.New("passwords do not match")

// Store defines the persistence hooks for account workflows.
type Store interface {
	CreateUser(ctx context.Context, username, email, passwordHash, avatarURL string) (store.User, error)
	UserByEmail(ctx context.Context, email string) (store.User, error)
	UserByID(ctx context.Context, id int64) (store.User, error)
	UpdateUser(ctx context.Context, id int64, update store.UserUpdate) (store.User, error)
}

// Tokens issues and verifies bearer tokens.
type Tokens interface {
	Generate(userID int64) (string, error)
	Verify(token string) (int64, error)
}

// RegisterParams carries a registration request.
type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	AvatarURL       string
}

// ProfileUpdate carries a profile edit. Password fields are optional; a new
// password requires the current one.
type ProfileUpdate struct {
	Username        string
	Email           string
	Description     string
	AvatarURL       string
	CurrentPassword string
	NewPassword     string
}

// Service coordinates user identity workflows.
type Service interface {
	Register(ctx context.Context, params RegisterParams) (store.User, string, error)
	Login(ctx context.Context, email, password string) (store.User, string, error)
	Verify(ctx context.Context, token string) (store.User, error)
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (store.User, error)
}

type service struct {
	store  Store
	tokens Tokens
}

// New constructs a users Service backed by the given Store and token issuer.
func New(store Store, tokens Tokens) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (store.User, string, error) {
	if err := ctx.Err(); err != nil {
		return store.User{}, "", err
	}

	if len(params.Password) < auth.MinPasswordLength {
		return store.User{}, "", ErrPasswordPolicy
	}
	if params.ConfirmPassword != "" && params.ConfirmPassword != params.Password {
		return store.User{}, "", ErrPasswordConfirm
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return store.User{}, "", err
	}

	user, err := s.store.CreateUser(ctx, params.Username, params.Email, hash, params.AvatarURL)
	if err != nil {
		return store.User{}, "", err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return store.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (store.User, string, error) {
	if err := ctx.Err(); err != nil {
		return store.User{}, "", err
	}

	user, err := s.store.UserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Burn a hash comparison so unknown emails cost the same
			// as wrong passwords.
			auth.VerifyDummy(password)
			return store.User{}, "", store.ErrInvalidCredentials
		}
		return store.User{}, "", err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return store.User{}, "", store.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return store.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

func (s *service) Verify(ctx context.Context, token string) (store.User, error) {
	if err := ctx.Err(); err != nil {
		return store.User{}, err
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return store.User{}, err
	}

	return s.store.UserByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (store.User, error) {
	if err := ctx.Err(); err != nil {
		return store.User{}, err
	}

	stored := store.UserUpdate{
		Username:    update.Username,
		Email:       update.Email,
		Description: update.Description,
		AvatarURL:   update.AvatarURL,
	}

	if update.NewPassword != "" {
		if len(update.NewPassword) < auth.MinPasswordLength {
			return store.User{}, ErrPasswordPolicy
		}

		current, err := s.store.UserByID(ctx, userID)
		if err != nil {
			return store.User{}, err
		}
		if err := auth.VerifyPassword(current.PasswordHash, update.CurrentPassword); err != nil {
			return store.User{}, err
		}

		hash, err := auth.HashPassword(update.NewPassword)
		if err != nil {
			return store.User{}, err
		}
		stored.PasswordHash = hash
	}

	return s.store.UpdateUser(ctx, userID, stored)
}
