package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/backend/internal/domain/catalog"
)

// productPhoto is a photo stored inline in the database
type productPhoto struct {
	Key         string    `gorm:"type:varchar(255);primaryKey"`
	ContentType string    `gorm:"type:varchar(100);not null"`
	Data        []byte    `gorm:"type:bytea;not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (productPhoto) TableName() string {
	return "product_photos"
}

// GormPhotoStorage implements catalog.PhotoStorage on the product_photos table.
// It is used when no object store is configured.
type GormPhotoStorage struct {
	db *gorm.DB
}

// NewGormPhotoStorage creates a new GormPhotoStorage
func NewGormPhotoStorage(db *gorm.DB) *GormPhotoStorage {
	return &GormPhotoStorage{db: db}
}

// Put inserts or replaces the photo stored under key
func (s *GormPhotoStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	photo := productPhoto{Key: key, ContentType: contentType, Data: data, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_type", "data", "updated_at"}),
	}).Create(&photo).Error
}

// Get loads the photo stored under key
func (s *GormPhotoStorage) Get(ctx context.Context, key string) ([]byte, string, error) {
	var photo productPhoto
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&photo).Error; err != nil {
		return nil, "", translateError(err)
	}
	return photo.Data, photo.ContentType, nil
}

// Delete removes the photo stored under key. Missing keys are ignored.
func (s *GormPhotoStorage) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&productPhoto{}).Error
}

var _ catalog.PhotoStorage = (*GormPhotoStorage)(nil)
