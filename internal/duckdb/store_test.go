package duckdb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/healthtoday/healthtoday/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore(\"\") failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testUser(id, email string) model.User {
	return model.User{
		ID:           id,
		Username:     "jane",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now(),
	}
}

func TestNewStore_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.duckdb")
	store, err := NewStore(path, 5*time.Second)
	if err != nil {
		t.Fatalf("NewStore(%q): %v", path, err)
	}
	defer store.Close()

	if store.DBPath() != path {
		t.Errorf("DBPath() = %q, want %q", store.DBPath(), path)
	}
	if store.QueryTimeout != 5*time.Second {
		t.Errorf("QueryTimeout = %v, want 5s", store.QueryTimeout)
	}
	store.Close()

	// Reopening finds the schema already applied.
	store, err = NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	v, err := store.SchemaVersion(context.Background())
	if err != nil || v != 2 {
		t.Errorf("SchemaVersion() = %d, %v; want 2", v, err)
	}
}

func TestCreateUser_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, testUser("u1", "jane@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := store.UserByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("UserByEmail: %v", err)
	}
	if got.ID != "u1" || got.Username != "jane" || got.PasswordHash != "$2a$10$hash" {
		t.Errorf("UserByEmail = %+v", got)
	}
	if !got.LastLoginAt.IsZero() {
		t.Errorf("LastLoginAt = %v, want zero", got.LastLoginAt)
	}

	n, err := store.UserCount(ctx)
	if err != nil {
		t.Fatalf("UserCount: %v", err)
	}
	if n != 1 {
		t.Errorf("UserCount = %d, want 1", n)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, testUser("u1", "dup@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	err := store.CreateUser(ctx, testUser("u2", "dup@example.com"))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second CreateUser err = %v, want ErrDuplicate", err)
	}
}

func TestUserByEmail_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTouchLastLogin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, testUser("u1", "jane@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := store.TouchLastLogin(ctx, "u1", at); err != nil {
		t.Fatalf("TouchLastLogin: %v", err)
	}

	got, err := store.UserByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("UserByEmail: %v", err)
	}
	if !got.LastLoginAt.Equal(at) {
		t.Errorf("LastLoginAt = %v, want %v", got.LastLoginAt, at)
	}

	if err := store.TouchLastLogin(ctx, "missing", at); !errors.Is(err, ErrNotFound) {
		t.Errorf("TouchLastLogin(missing) err = %v, want ErrNotFound", err)
	}
}

func TestResponseCache(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.CachedResponse(ctx, "k", time.Minute); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	if err := store.StoreResponse(ctx, "k", []byte(`[1]`)); err != nil {
		t.Fatalf("StoreResponse: %v", err)
	}
	if err := store.StoreResponse(ctx, "k", []byte(`[2]`)); err != nil {
		t.Fatalf("StoreResponse replace: %v", err)
	}

	body, ok, err := store.CachedResponse(ctx, "k", time.Minute)
	if err != nil || !ok {
		t.Fatalf("CachedResponse: ok=%v err=%v", ok, err)
	}
	if string(body) != `[2]` {
		t.Errorf("body = %s, want [2]", body)
	}

	if _, ok, _ := store.CachedResponse(ctx, "k", -time.Second); ok {
		t.Error("expired entry served")
	}

	n, err := store.DeleteResponsesBefore(ctx, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("DeleteResponsesBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
}
