package workorder

import (
	"context"
	"time"
)

// ObjectStorage presigns direct client transfers for attachment files.
// Implementations live in infrastructure/storage.
type ObjectStorage interface {
	PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	PresignDownload(ctx context.Context, key, fileName string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, key string) error
	ObjectExists(ctx context.Context, key string) (bool, error)
}

var allowedContentTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"image/heic":         true,
	"application/pdf":    true,
	"text/plain":         true,
	"text/csv":           true,
	"video/mp4":          true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// IsAllowedContentType reports whether files of the given MIME type may be attached
func IsAllowedContentType(contentType string) bool {
	return allowedContentTypes[contentType]
}
