package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/adscalemedia/adsite-backend/internal/models"
)

// GormStorage implements Storage on top of a GORM connection.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage constructs a GormStorage.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// GetUser returns the user with the given id or ErrNotFound.
func (s *GormStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername returns the user with the given username or ErrNotFound.
func (s *GormStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAllUsers returns every user.
func (s *GormStorage) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser persists a new user, translating uniqueness violations into
// ErrUsernameTaken.
func (s *GormStorage) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := models.User{Username: username, Password: passwordHash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

// CreateInquiry persists inquiry, filling the id and creation timestamp.
func (s *GormStorage) CreateInquiry(ctx context.Context, inquiry *models.Inquiry) error {
	return s.db.WithContext(ctx).Create(inquiry).Error
}

// GetInquiries returns all inquiries, newest first.
func (s *GormStorage) GetInquiries(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

// GetInquiriesByPlatform returns inquiries for one platform, newest first.
func (s *GormStorage) GetInquiriesByPlatform(ctx context.Context, platform string) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := s.db.WithContext(ctx).
		Where("platform = ?", platform).
		Order("created_at DESC").
		Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

// GetInquiriesByIPSince returns inquiries from ip created at or after since.
// The boundary is inclusive.
func (s *GormStorage) GetInquiriesByIPSince(ctx context.Context, ip string, since time.Time) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := s.db.WithContext(ctx).
		Where("ip_address = ? AND created_at >= ?", ip, since).
		Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

// UpdateInquiryRemark sets the remarks field or returns ErrNotFound. An
// empty remark stores NULL so cleared rows look like never-annotated ones.
func (s *GormStorage) UpdateInquiryRemark(ctx context.Context, id, remarks string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var value *string
	if remarks != "" {
		value = &remarks
	}
	if err := s.db.WithContext(ctx).Model(&inquiry).Update("remarks", value).Error; err != nil {
		return nil, err
	}
	inquiry.Remarks = value
	return &inquiry, nil
}

// DeleteInquiry removes the inquiry and reports whether a row was deleted.
func (s *GormStorage) DeleteInquiry(ctx context.Context, id string) (bool, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Inquiry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// isUniqueViolation detects a unique-constraint failure across dialects.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed") ||
		strings.Contains(msg, "duplicate key")
}
