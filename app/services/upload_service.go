package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

// imageTypes maps the accepted sniffed content types to file extensions.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Upload is what the upload endpoints answer with.
type Upload struct {
	Image string `json:"image"`
}

// UploadService stores product images on a disk.
type UploadService struct {
	disk     storage.Disk
	products repositories.ProductRepository
	maxBytes int64
}

func NewUploadService(disk storage.Disk, products repositories.ProductRepository, maxBytes int64) *UploadService {
	return &UploadService{disk: disk, products: products, maxBytes: maxBytes}
}

// MaxBytes is the largest accepted image.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Image stores an image and returns its public URL.
func (s *UploadService) Image(ctx context.Context, r io.Reader) (*Upload, error) {
	_, url, err := s.store(ctx, r)
	if err != nil {
		return nil, err
	}
	return &Upload{Image: url}, nil
}

// ProductImage stores an image and makes it the product's thumbnail.
func (s *UploadService) ProductImage(ctx context.Context, productID primitive.ObjectID, r io.Reader) (*Upload, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, notFound(err, "Product not found")
	}

	name, url, err := s.store(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := s.products.SetThumbnail(ctx, productID, url); err != nil {
		if derr := s.disk.Delete(ctx, name); derr != nil {
			logger.WithCtx(ctx).Warn("orphaned upload", "file", name, "error", derr)
		}
		return nil, notFound(err, "Product not found")
	}
	return &Upload{Image: url}, nil
}

// store reads at most maxBytes+1 bytes, checks size and content type, and
// writes the image under a generated name.
func (s *UploadService) store(ctx context.Context, r io.Reader) (string, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", "", err
	}
	if int64(len(data)) > s.maxBytes {
		return "", "", apperr.Validation("", map[string]string{
			"image": fmt.Sprintf("The image must not be greater than %d kilobytes.", s.maxBytes/1024),
		})
	}
	if len(data) == 0 {
		return "", "", apperr.Validation("", map[string]string{"image": "The image field is required."})
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageTypes[contentType]
	if !ok {
		return "", "", apperr.Validation("", map[string]string{
			"image": "The image must be a file of type: jpeg, png, gif.",
		})
	}

	name := fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	if err := s.disk.Put(ctx, name, bytes.NewReader(data), contentType); err != nil {
		return "", "", err
	}
	metrics.UploadBytes.WithLabelValues(s.disk.Name()).Observe(float64(len(data)))
	return name, s.disk.URL(name), nil
}
