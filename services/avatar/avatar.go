// Package avatar owns the avatar blob lifecycle: validated upload,
// reference swap on the account row, rollback of partial writes, and
// best-effort cleanup of replaced blobs.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"

	"github.com/google/uuid"
	"github.com/hweilin/admin-console/model"
	"gorm.io/gorm"
)

var (
	ErrNoAvatar        = errors.New("no avatar set")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds the size limit")
)

// MaxSize is the largest accepted avatar upload
const MaxSize = 5 << 20 // 5 MiB

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// BlobStore is the object storage the service writes avatars to
type BlobStore interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	URL(key string) string
}

// Service manages avatar blobs for administrator accounts
type Service struct {
	db    *gorm.DB
	blobs BlobStore
}

// NewService creates an avatar service
func NewService(db *gorm.DB, blobs BlobStore) *Service {
	return &Service{db: db, blobs: blobs}
}

// URL resolves a stored avatar key to its public URL, empty when unset
func (s *Service) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.blobs.URL(key)
}

// Upload validates and stores a new avatar for target, swaps the
// account's reference, then removes the replaced blob. A failed row
// update rolls back the freshly written blob so nothing dangles.
func (s *Service) Upload(ctx context.Context, target *model.Admin, data []byte, contentType string) (string, error) {
	ext, ok := extByContentType[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	if len(data) > MaxSize {
		return "", ErrTooLarge
	}

	key := path.Join("avatars", fmt.Sprintf("%d", target.ID), uuid.New().String()+ext)

	if _, err := s.blobs.UploadBytes(ctx, key, data, contentType); err != nil {
		return "", err
	}

	oldKey := target.Avatar
	if err := s.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("id = ?", target.ID).
		Update("avatar", key).
		Error; err != nil {
		// Roll back the blob we just wrote
		if cleanupErr := s.blobs.DeleteFile(ctx, key); cleanupErr != nil {
			log.Printf("avatar: failed to clean up blob %s after row update error: %v", key, cleanupErr)
		}
		return "", err
	}
	target.Avatar = key

	if oldKey != "" {
		if err := s.blobs.DeleteFile(ctx, oldKey); err != nil {
			log.Printf("avatar: failed to delete replaced blob %s: %v", oldKey, err)
		}
	}

	return key, nil
}

// Delete clears target's avatar reference and removes the blob.
// Blob removal is best-effort; the cleared reference is authoritative.
func (s *Service) Delete(ctx context.Context, target *model.Admin) error {
	if target.Avatar == "" {
		return ErrNoAvatar
	}

	key := target.Avatar
	if err := s.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("id = ?", target.ID).
		Update("avatar", "").
		Error; err != nil {
		return err
	}
	target.Avatar = ""

	if err := s.blobs.DeleteFile(ctx, key); err != nil {
		log.Printf("avatar: failed to delete blob %s: %v", key, err)
	}

	return nil
}
