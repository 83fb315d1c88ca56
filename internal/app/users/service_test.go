package users

import (
	"context"
	"errors"
	"testing"

	"sleevenotes/internal/auth"
	"sleevenotes/internal/store"
)

type stubStore struct {
	created   store.User
	createErr error

	byEmail    store.User
	byEmailErr error

	byID    store.User
	byIDErr error

	updated   store.User
	updateErr error

	createdHash string
}

func (s *stubStore) CreateUser(ctx context.Context, username, email, passwordHash, avatarURL string) (store.User, error) {
	s.createdHash = passwordHash
	if s.createErr != nil {
		return store.User{}, s.createErr
	}
	return s.created, nil
}

func (s *stubStore) UserByEmail(ctx context.Context, email string) (store.User, error) {
	if s.byEmailErr != nil {
		return store.User{}, s.byEmailErr
	}
	return s.byEmail, nil
}

func (s *stubStore) UserByID(ctx context.Context, id int64) (store.User, error) {
	if s.byIDErr != nil {
		return store.User{}, s.byIDErr
	}
	return s.byID, nil
}

func (s *stubStore) UpdateUser(ctx context.Context, id int64, update store.UserUpdate) (store.User, error) {
	if s.updateErr != nil {
		return store.User{}, s.updateErr
	}
	return s.updated, nil
}

type stubTokens struct {
	generated   string
	generateErr error

	verifiedID int64
	verifyErr  error
}

func (s *stubTokens) Generate(userID int64) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return s.generated, nil
}

func (s *stubTokens) Verify(token string) (int64, error) {
	if s.verifyErr != nil {
		return 0, s.verifyErr
	}
	return s.verifiedID, nil
}

func TestRegisterShortPassword(t *testing.T) {
	svc := New(&stubStore{}, &stubTokens{})

	_, _, err := svc.Register(context.Background(), RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "abc",
	})
	if !errors.Is(err, ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy, got %v", err)
	}
}

func TestRegisterConfirmMismatch(t *testing.T) {
	svc := New(&stubStore{}, &stubTokens{})

	_, _, err := svc.Register(context.Background(), RegisterParams{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	})
	if !errors.Is(err, ErrPasswordConfirm) {
		t.Fatalf("expected ErrPasswordConfirm, got %v", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	st := &stubStore{created: store.User{ID: 1, Username: "alice"}}
	svc := New(st, &stubTokens{generated: "tok"})

	user, token, err := svc.Register(context.Background(), RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID != 1 || token != "tok" {
		t.Fatalf("unexpected result: %+v %q", user, token)
	}
	if st.createdHash == "" || st.createdHash == "secret123" {
		t.Fatalf("password stored without hashing: %q", st.createdHash)
	}
	if err := auth.VerifyPassword(st.createdHash, "secret123"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := New(&stubStore{byEmailErr: store.ErrUserNotFound}, &stubTokens{})

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, store.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	svc := New(&stubStore{byEmail: store.User{ID: 1, PasswordHash: hash}}, &stubTokens{})

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, store.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	svc := New(&stubStore{byEmail: store.User{ID: 7, PasswordHash: hash}}, &stubTokens{generated: "tok"})

	user, token, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != 7 || token != "tok" {
		t.Fatalf("unexpected result: %+v %q", user, token)
	}
}

func TestVerifyResolvesStoredUser(t *testing.T) {
	svc := New(&stubStore{byID: store.User{ID: 9, Username: "alice"}}, &stubTokens{verifiedID: 9})

	user, err := svc.Verify(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if user.ID != 9 {
		t.Fatalf("expected user 9, got %d", user.ID)
	}
}

func TestVerifyInvalidToken(t *testing.T) {
	svc := New(&stubStore{}, &stubTokens{verifyErr: auth.ErrInvalidToken})

	if _, err := svc.Verify(context.Background(), "junk"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestUpdateProfileNewPasswordRequiresCurrent(t *testing.T) {
	hash, err := auth.HashPassword("oldsecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	svc := New(&stubStore{byID: store.User{ID: 1, PasswordHash: hash}}, &stubTokens{})

	_, err = svc.UpdateProfile(context.Background(), 1, ProfileUpdate{
		Username:        "alice",
		Email:           "alice@example.com",
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	if !errors.Is(err, auth.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}
