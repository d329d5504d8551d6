package storage

import (
	"context"
	"errors"
	"fmt"

	"mediconnect/internal/domain/entity"
	domainRepo "mediconnect/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgresBlobStore keeps blobs in the stored_blobs table. The version column
// doubles as the optimistic concurrency token.
type PostgresBlobStore struct {
	db *gorm.DB
}

func NewPostgresBlobStore(db *gorm.DB) (*PostgresBlobStore, error) {
	if err := db.AutoMigrate(&entity.StoredBlob{}); err != nil {
		return nil, fmt.Errorf("migrate stored_blobs: %w", err)
	}
	return &PostgresBlobStore{db: db}, nil
}

func (s *PostgresBlobStore) Get(ctx context.Context, key string) ([]byte, int64, error) {
	var blob entity.StoredBlob
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domainRepo.ErrBlobNotFound
		}
		return nil, 0, fmt.Errorf("select blob %s: %w", key, err)
	}
	return blob.Value, blob.Version, nil
}

func (s *PostgresBlobStore) CompareAndSwap(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	db := s.db.WithContext(ctx)

	if expected == 0 {
		blob := &entity.StoredBlob{Key: key, Value: value, Version: 1}
		if err := db.Create(blob).Error; err != nil {
			if isUniqueViolation(err) {
				return 0, domainRepo.ErrVersionConflict
			}
			return 0, fmt.Errorf("insert blob %s: %w", key, err)
		}
		return 1, nil
	}

	next := expected + 1
	result := db.Model(&entity.StoredBlob{}).
		Where("key = ? AND version = ?", key, expected).
		Updates(map[string]any{"value": value, "version": next})
	if result.Error != nil {
		return 0, fmt.Errorf("update blob %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, domainRepo.ErrVersionConflict
	}
	return next, nil
}

func (s *PostgresBlobStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&entity.StoredBlob{}).Error; err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

// isUniqueViolation checks for PostgreSQL error code 23505
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
