package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/adscalemedia/adsite-backend/internal/models"
)

func setupStorageTestDB(t *testing.T) *GormStorage {
	t.Helper()
	dsn := fmt.Sprintf("file:storage_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := conn.AutoMigrate(&models.User{}, &models.Inquiry{}); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return NewGormStorage(conn)
}

func newTestInquiry(platform, ip string) *models.Inquiry {
	return &models.Inquiry{
		Name:      "Jane Doe",
		Phone:     "+4915112345678",
		Email:     "jane@example.com",
		Country:   "Germany",
		Message:   "We want to scale our paid social campaigns.",
		Platform:  platform,
		IPAddress: ip,
	}
}

func TestCreateUserAssignsIDAndEnforcesUniqueness(t *testing.T) {
	store := setupStorageTestDB(t)
	ctx := context.Background()

	user, errCreate := store.CreateUser(ctx, "admin", "$2a$12$fakehash")
	if errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}
	if user.ID == "" {
		t.Fatal("expected server-assigned id")
	}

	if _, errDup := store.CreateUser(ctx, "admin", "$2a$12$otherhash"); errDup != ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", errDup)
	}

	fetched, errGet := store.GetUserByUsername(ctx, "admin")
	if errGet != nil {
		t.Fatalf("get by username: %v", errGet)
	}
	if fetched.ID != user.ID {
		t.Fatalf("fetched id %s, want %s", fetched.ID, user.ID)
	}

	byID, errGetID := store.GetUser(ctx, user.ID)
	if errGetID != nil {
		t.Fatalf("get by id: %v", errGetID)
	}
	if byID.Username != "admin" {
		t.Fatalf("fetched username %q", byID.Username)
	}
}

func TestGetUserMissingReturnsNotFound(t *testing.T) {
	store := setupStorageTestDB(t)
	ctx := context.Background()

	if _, err := store.GetUser(ctx, "no-such-id"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetUserByUsername(ctx, "nobody"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateInquiryRoundTrip(t *testing.T) {
	store := setupStorageTestDB(t)
	ctx := context.Background()

	inquiry := newTestInquiry("facebook", "203.0.113.7")
	if err := store.CreateInquiry(ctx, inquiry); err != nil {
		t.Fatalf("create inquiry: %v", err)
	}
	if inquiry.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if inquiry.CreatedAt.IsZero() {
		t.Fatal("expected server-assigned creation timestamp")
	}

	rows, errList := store.GetInquiriesByPlatform(ctx, "facebook")
	if errList != nil {
		t.Fatalf("list by platform: %v", errList)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 inquiry, got %d", len(rows))
	}
	got := rows[0]
	if got.Name != inquiry.Name || got.Phone != inquiry.Phone || got.Email != inquiry.Email ||
		got.Country != inquiry.Country || got.Message != inquiry.Message ||
		got.Platform != inquiry.Platform || got.IPAddress != inquiry.IPAddress {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.Remarks != nil {
		t.Fatalf("expected nil remarks on fresh inquiry, got %v", *got.Remarks)
	}
}

func TestGetInquiriesNewestFirst(t *testing.T) {
	store := setupStorageTestDB(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		inquiry := newTestInquiry("google", "203.0.113.7")
		inquiry.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.CreateInquiry(ctx, inquiry); err != nil {
			t.Fatalf("create inquiry %d: %v", i, err)
		}
	}

	rows, errList := store.GetInquiries(ctx)
	if errList != nil {
		t.Fatalf("list: %v", errList)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 inquiries, got %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].CreatedAt.Before(rows[i].CreatedAt) {
			t.Fatalf("inquiries not ordered newest first: %v before %v", rows[i-1].CreatedAt, rows[i].CreatedAt)
		}
	}
}

func TestGetInquiriesByIPSinceBoundaryInclusive(t *testing.T) {
	store := setupStorageTestDB(t)
	ctx := context.Background()

	cutoff := time.Now().Add(-7 * 24 * time.Hour).Truncate(time.Second)

	onBoundary := newTestInquiry("reddit", "203.0.113.7")
	onBoundary.CreatedAt = cutoff
	older := newTestInquiry("reddit", "203.0.113.7")
	older.CreatedAt = cutoff.Add(-time.Second)
	otherIP := newTestInquiry("reddit", "198.51.100.9")
	otherIP.CreatedAt = cutoff.Add(time.Hour)

	for _, inquiry := range []*models.Inquiry{onBoundary, older, otherIP} {
		if err := store.CreateInquiry(ctx, inquiry); err != nil {
			t.Fatalf("create inquiry: %v", err)
		}
	}

	rows, errList := store.GetInquiriesByIPSince(ctx, "203.0.113.7", cutoff)
	if errList != nil {
		t.Fatalf("list by ip: %v", errList)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly the boundary inquiry, got %d rows", len(rows))
	}
	if rows[0].ID != onBoundary.ID {
		t.Fatalf("expected boundary inquiry %s, got %s", onBoundary.ID, rows[0].ID)
	}
}

func TestUpdateInquiryRemarkSetAndClear(t *testing.T) {
	store := setupStorageTestDB(t)
	ctx := context.Background()

	inquiry := newTestInquiry("tiktok", "203.0.113.7")
	if err := store.CreateInquiry(ctx, inquiry); err != nil {
		t.Fatalf("create inquiry: %v", err)
	}

	updated, errUpdate := store.UpdateInquiryRemark(ctx, inquiry.ID, "followed up by phone")
	if errUpdate != nil {
		t.Fatalf("update remark: %v", errUpdate)
	}
	if updated.Remarks == nil || *updated.Remarks != "followed up by phone" {
		t.Fatalf("remark not stored: %+v", updated.Remarks)
	}

	cleared, errClear := store.UpdateInquiryRemark(ctx, inquiry.ID, "")
	if errClear != nil {
		t.Fatalf("clear remark: %v", errClear)
	}
	if cleared.Remarks != nil {
		t.Fatalf("expected cleared remark, got %v", *cleared.Remarks)
	}

	if _, errMissing := store.UpdateInquiryRemark(ctx, "no-such-id", "x"); errMissing != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", errMissing)
	}
}

func TestDeleteInquiryReportsWhetherRowExisted(t *testing.T) {
	store := setupStorageTestDB(t)
	ctx := context.Background()

	inquiry := newTestInquiry("snapchat", "203.0.113.7")
	if err := store.CreateInquiry(ctx, inquiry); err != nil {
		t.Fatalf("create inquiry: %v", err)
	}

	deleted, errDelete := store.DeleteInquiry(ctx, inquiry.ID)
	if errDelete != nil {
		t.Fatalf("delete: %v", errDelete)
	}
	if !deleted {
		t.Fatal("expected delete to report a removed row")
	}

	deleted, errDelete = store.DeleteInquiry(ctx, inquiry.ID)
	if errDelete != nil {
		t.Fatalf("second delete: %v", errDelete)
	}
	if deleted {
		t.Fatal("expected second delete to report no removed row")
	}
}
