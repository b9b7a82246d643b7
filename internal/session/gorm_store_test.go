package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/adscalemedia/adsite-backend/internal/models"
)

func setupSessionTestDB(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:session_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := conn.AutoMigrate(&models.Session{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return NewGormStore(conn)
}

func TestGormStoreCreateGetDelete(t *testing.T) {
	store := setupSessionTestDB(t)
	ctx := context.Background()

	id, errCreate := store.Create(ctx, "user-1", time.Hour)
	if errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	userID, errGet := store.Get(ctx, id)
	if errGet != nil {
		t.Fatalf("get: %v", errGet)
	}
	if userID != "user-1" {
		t.Fatalf("resolved user %q, want user-1", userID)
	}

	if errDelete := store.Delete(ctx, id); errDelete != nil {
		t.Fatalf("delete: %v", errDelete)
	}
	if _, err := store.Get(ctx, id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGormStoreGetUnknownID(t *testing.T) {
	store := setupSessionTestDB(t)

	if _, err := store.Get(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGormStoreExpiredSessionIsInvalid(t *testing.T) {
	store := setupSessionTestDB(t)
	ctx := context.Background()

	id, errCreate := store.Create(ctx, "user-1", -time.Minute)
	if errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}
	if _, err := store.Get(ctx, id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
}

func TestGormStoreDeleteUnknownIDIsNoop(t *testing.T) {
	store := setupSessionTestDB(t)

	if err := store.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
}
