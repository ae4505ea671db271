// Package repositories defines the storage contracts of every collection
// and their MongoDB implementations. An in-process implementation lives in
// repositories/memory.
//
// Repositories never reach into each other's collections. Cross-collection
// rules (a product's category must exist, a location in use cannot be
// deleted) are enforced by the services.
package repositories

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/database"
)

var (
	// ErrNotFound is returned (wrapped) when a lookup by id matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
	// ErrVersionConflict is returned when a versioned save lost a race.
	ErrVersionConflict = errors.New("document was modified concurrently")
)

type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Create assigns ID, Version and timestamps.
	Create(ctx context.Context, u *models.User) error
	// Save replaces the document only if its stored version still equals
	// u.Version, then bumps u.Version.
	Save(ctx context.Context, u *models.User) error
}

type CategoryRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	// Touch bumps updatedAt. Inside a transaction it makes the category part
	// of the write set, so a concurrent unit of work that writes it conflicts.
	Touch(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountChildren(ctx context.Context, id primitive.ObjectID) (int64, error)
	Roots(ctx context.Context) ([]models.Category, error)
	Children(ctx context.Context, parents []primitive.ObjectID) ([]models.Category, error)
}

type TierRepository interface {
	// CreateOptions inserts all options in one call and assigns their ids.
	CreateOptions(ctx context.Context, opts []models.TierOption) error
	Create(ctx context.Context, t *models.Tier) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tier, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tier, error)
	List(ctx context.Context) ([]models.Tier, error)
	FindOptionByID(ctx context.Context, id primitive.ObjectID) (*models.TierOption, error)
	FindOptionsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.TierOption, error)
}

// ProductQuery filters and pages a product listing. Results are newest first.
type ProductQuery struct {
	Category *primitive.ObjectID
	Skip     int64
	Limit    int64
}

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
	// Update writes the header fields only; Variants and Stock are ignored.
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByCategory(ctx context.Context, category primitive.ObjectID) (int64, error)
	// SetVariants replaces the variant list and the stock total.
	SetVariants(ctx context.Context, id primitive.ObjectID, variants []primitive.ObjectID, stock int) error
	AddVariant(ctx context.Context, id, variant primitive.ObjectID, stock int) error
	RemoveVariant(ctx context.Context, id, variant primitive.ObjectID, stock int) error
	SetThumbnail(ctx context.Context, id primitive.ObjectID, url string) error
}

type VariantRepository interface {
	Create(ctx context.Context, v *models.Variant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Variant, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Variant, error)
	// List returns every variant, or only those of product when it is set.
	List(ctx context.Context, product *primitive.ObjectID) ([]models.Variant, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByProduct(ctx context.Context, product primitive.ObjectID) (int64, error)
}

// StockQuery filters the ledger; nil fields match everything.
type StockQuery struct {
	Product *primitive.ObjectID
	Variant *primitive.ObjectID
}

type StockRepository interface {
	Create(ctx context.Context, s *models.Stock) error
	List(ctx context.Context, q StockQuery) ([]models.Stock, error)
	CountByLocation(ctx context.Context, location primitive.ObjectID) (int64, error)
	DeleteByProduct(ctx context.Context, product primitive.ObjectID) (int64, error)
	DeleteByVariant(ctx context.Context, variant primitive.ObjectID) (int64, error)
}

type LocationRepository interface {
	Create(ctx context.Context, l *models.Location) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Location, error)
	Update(ctx context.Context, l *models.Location) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, skip, limit int64) ([]models.Location, int64, error)
}

type BrandRepository interface {
	Create(ctx context.Context, b *models.Brand) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error)
	List(ctx context.Context) ([]models.Brand, error)
}

// Set bundles every repository with the transaction boundary they share.
type Set struct {
	Users      UserRepository
	Categories CategoryRepository
	Tiers      TierRepository
	Products   ProductRepository
	Variants   VariantRepository
	Stocks     StockRepository
	Locations  LocationRepository
	Brands     BrandRepository
	Tx         database.Transactor
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
