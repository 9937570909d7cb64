package port

import (
	"context"
	"io"
	"time"
)

// UploadInput describes an object to store.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// ObjectStorage defines the contract for export workbook storage.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) error
	PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}
