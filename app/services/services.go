// Package services holds the domain operations behind every endpoint.
//
// Services take validated input structs, talk to repositories and return
// *apperr.Error values for anything the client should see. Multi-document
// writes go through transact so they commit or roll back as one unit.
package services

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/logger"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

// Services is every service, built once at boot.
type Services struct {
	Auth       *AuthService
	Addresses  *AddressService
	Categories *CategoryService
	Tiers      *TierService
	Products   *ProductService
	Variants   *VariantService
	Stocks     *StockService
	Locations  *LocationService
	Brands     *BrandService
	Uploads    *UploadService
}

// New wires the services over repos. tokens may be nil, in which case
// refresh tokens are not single-use.
func New(repos *repositories.Set, tokens cache.Store, disk storage.Disk, uploadMax int64) *Services {
	return &Services{
		Auth:       NewAuthService(repos.Users, tokens),
		Addresses:  NewAddressService(repos.Users),
		Categories: NewCategoryService(repos),
		Tiers:      NewTierService(repos),
		Products:   NewProductService(repos),
		Variants:   NewVariantService(repos),
		Stocks:     NewStockService(repos),
		Locations:  NewLocationService(repos),
		Brands:     NewBrandService(repos.Brands),
		Uploads:    NewUploadService(disk, repos.Products, uploadMax),
	}
}

// transact runs fn as one unit of work named op. Client errors raised inside
// (4xx) pass through unchanged; anything else is logged and collapsed into
// a generic TransactionFailed.
func transact(ctx context.Context, tx database.Transactor, op string, fn func(ctx context.Context) error) error {
	err := tx.WithTransaction(ctx, fn)
	metrics.RecordTransaction(op, err)
	if err == nil {
		return nil
	}

	var e *apperr.Error
	if errors.As(err, &e) && e.Code < http.StatusInternalServerError {
		return e
	}
	logger.WithCtx(ctx).Error("transaction rolled back", "operation", op, "error", err)
	return apperr.TransactionFailed(op, err)
}

// notFound turns a repository miss into a 404 with message; other errors
// are returned as they are.
func notFound(err error, message string) error {
	if repositories.IsNotFound(err) {
		return apperr.NotFound(message)
	}
	return err
}

// optionalID parses a validated, possibly empty id field.
func optionalID(hex string) *primitive.ObjectID {
	if hex == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil
	}
	return &id
}

// parseIDs parses validated id fields, skipping anything malformed.
func parseIDs(hexes []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if id, err := primitive.ObjectIDFromHex(h); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// pageBounds applies the listing defaults: page 1, limit 10, at most 100.
func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
