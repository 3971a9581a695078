package blob

import (
	"context"
	"time"
)

// ObjectInfo описывает объект в хранилище.
type ObjectInfo struct {
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Store is the provider side of the gateway: put/delete/list keyed by path.
// Implementations: S3-compatible (minio), local disk, in-memory for tests.
type Store interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (url string, err error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
