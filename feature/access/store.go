// Package access provides the access-control store for the upload pipeline.
//
// Trusted sources authorize uploads; suppressed uploaders have their uploads
// silently discarded. Both record kinds are admin-provisioned and keyed by
// one-way hashes, never by raw credentials.
package access

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store reads and writes access-control records.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over an established database connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the access-control tables if they do not exist.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&TrustedSource{}, &SuppressedUploader{})
}

// GetTrustedSource resolves a hashed API key to a trusted source. A missing
// record returns (nil, nil): the caller treats absence as an authorization
// failure, not a storage error.
func (s *Store) GetTrustedSource(ctx context.Context, apiKeyHash string) (*TrustedSource, error) {
	var source TrustedSource
	err := s.db.WithContext(ctx).First(&source, "api_key_hash = ?", apiKeyHash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up trusted source: %w", err)
	}
	return &source, nil
}

// IsSuppressed checks a hashed uploader identifier against the suppression
// list.
func (s *Store) IsSuppressed(ctx context.Context, uploaderIDHash string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&SuppressedUploader{}).
		Where("uploader_id_hash = ?", uploaderIDHash).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check suppression: %w", err)
	}
	return count > 0, nil
}

// IncrementUploadCount bumps a source's accepted-upload counter.
func (s *Store) IncrementUploadCount(ctx context.Context, apiKeyHash string) error {
	err := s.db.WithContext(ctx).Model(&TrustedSource{}).
		Where("api_key_hash = ?", apiKeyHash).
		UpdateColumn("upload_count", gorm.Expr("upload_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment upload count: %w", err)
	}
	return nil
}

// CreateSource provisions a new trusted source.
func (s *Store) CreateSource(ctx context.Context, source *TrustedSource) error {
	if err := s.db.WithContext(ctx).Create(source).Error; err != nil {
		return fmt.Errorf("failed to create trusted source: %w", err)
	}
	return nil
}

// FlagUploader adds a hashed uploader identifier to the suppression list.
// Flagging an already-flagged uploader is a no-op.
func (s *Store) FlagUploader(ctx context.Context, uploaderIDHash string) error {
	record := SuppressedUploader{UploaderIDHash: uploaderIDHash}
	err := s.db.WithContext(ctx).FirstOrCreate(&record, record).Error
	if err != nil {
		return fmt.Errorf("failed to flag uploader: %w", err)
	}
	return nil
}
