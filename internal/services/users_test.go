package services

import (
	"errors"
	"testing"

	"tribune/internal/models"
)

func TestRegisterDuplicateUsername(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserService(conn)

	if _, err := users.Register("alice", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := users.Register("alice", "secret2"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 user row, got %d", count)
	}
}

func TestRegisterUsernameCaseSensitive(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserService(conn)

	if _, err := users.Register("alice", "secret1"); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	// Exact-match semantics: a different casing is a different username.
	if _, err := users.Register("Alice", "secret1"); err != nil {
		t.Fatalf("register Alice: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserService(conn)

	registered, err := users.Register("alice", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := users.Authenticate("alice", "secret1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %d, got %d", registered.ID, user.ID)
	}

	// Wrong password and unknown user must be indistinguishable.
	if _, err := users.Authenticate("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := users.Authenticate("nobody", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordStoredHashed(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserService(conn)

	if _, err := users.Register("alice", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	var user models.User
	if err := conn.Where("username = ?", "alice").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Password == "secret1" || user.Password == "" {
		t.Errorf("password must be stored as a hash, got %q", user.Password)
	}
}
