package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/adscalemedia/adsite-backend/internal/models"
	"github.com/adscalemedia/adsite-backend/internal/security"
)

// GormStore keeps sessions in the relational database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore constructs a GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Create generates a new session row for userID valid for ttl.
func (s *GormStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	id, errID := security.NewSessionID()
	if errID != nil {
		return "", errID
	}
	row := models.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return id, nil
}

// Get resolves a session id to its user id. Expired rows are removed lazily.
func (s *GormStore) Get(ctx context.Context, id string) (string, error) {
	var row models.Session
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if time.Now().After(row.ExpiresAt) {
		_ = s.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", id).Error
		return "", ErrNotFound
	}
	return row.UserID, nil
}

// Delete invalidates a session.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", id).Error
}
