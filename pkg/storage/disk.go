// Package storage is the file store behind image uploads.
//
// Two drivers exist:
//   - "local": files under STORAGE_LOCAL_ROOT, served by the kernel at /public
//   - "s3": any S3-compatible object store (AWS S3, MinIO, R2)
package storage

import (
	"context"
	"io"
)

// Disk is implemented by every driver.
type Disk interface {
	// Put writes r to path, replacing any existing object.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error
	Exists(ctx context.Context, path string) bool
	// Delete removes path. A missing path is not an error.
	Delete(ctx context.Context, path string) error
	// URL returns the public URL clients use to fetch path.
	URL(path string) string
	// Name identifies the driver in logs and metrics.
	Name() string
}
