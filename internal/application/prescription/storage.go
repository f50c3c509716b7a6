package prescription

import (
	"context"
	"time"
)

// ObjectStorageService abstracts the object storage backend used for
// prescription files. Implemented by the S3 adapter in infrastructure.
type ObjectStorageService interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	PublicURL(storageKey string) string
}
