// Package storage defines the persistence capability set used by the API
// layer. A single GORM-backed implementation exists; the interface keeps
// handlers testable against doubles.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/adscalemedia/adsite-backend/internal/models"
)

// Sentinel errors returned by Storage implementations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("storage: record not found")
	// ErrUsernameTaken indicates a username uniqueness violation.
	ErrUsernameTaken = errors.New("storage: username already exists")
)

// Storage is the persistence contract for users and inquiries.
type Storage interface {
	// GetUser returns the user with the given id or ErrNotFound.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetUserByUsername returns the user with the given username or
	// ErrNotFound. Used for login and uniqueness checks.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetAllUsers returns every user. Only used to decide whether
	// registration is still allowed.
	GetAllUsers(ctx context.Context) ([]models.User, error)
	// CreateUser persists a new user, returning ErrUsernameTaken when the
	// username is already in use.
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)

	// CreateInquiry persists inquiry, filling its server-assigned id and
	// creation timestamp.
	CreateInquiry(ctx context.Context, inquiry *models.Inquiry) error
	// GetInquiries returns all inquiries, newest first.
	GetInquiries(ctx context.Context) ([]models.Inquiry, error)
	// GetInquiriesByPlatform returns inquiries for one platform, newest first.
	GetInquiriesByPlatform(ctx context.Context, platform string) ([]models.Inquiry, error)
	// GetInquiriesByIPSince returns inquiries submitted from ip with a
	// creation timestamp at or after since. Drives the rate limiter.
	GetInquiriesByIPSince(ctx context.Context, ip string, since time.Time) ([]models.Inquiry, error)
	// UpdateInquiryRemark sets the remarks field, returning the updated
	// record or ErrNotFound. An empty remark clears the field.
	UpdateInquiryRemark(ctx context.Context, id, remarks string) (*models.Inquiry, error)
	// DeleteInquiry removes the inquiry and reports whether a row was
	// actually deleted.
	DeleteInquiry(ctx context.Context, id string) (bool, error)
}
