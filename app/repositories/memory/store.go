// Package memory implements the repositories in process. It backs
// STORE_DRIVER=memory and the service and HTTP tests.
//
// All collections share one mutex. A transaction holds that mutex for its
// whole duration and restores a snapshot of every collection when its
// function fails, so readers never observe a partial unit of work.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
)

// Store holds every collection.
type Store struct {
	mu sync.Mutex

	users       map[primitive.ObjectID]models.User
	categories  map[primitive.ObjectID]models.Category
	tiers       map[primitive.ObjectID]models.Tier
	tierOptions map[primitive.ObjectID]models.TierOption
	products    map[primitive.ObjectID]models.Product
	variants    map[primitive.ObjectID]models.Variant
	stocks      map[primitive.ObjectID]models.Stock
	locations   map[primitive.ObjectID]models.Location
	brands      map[primitive.ObjectID]models.Brand
}

func NewStore() *Store {
	return &Store{
		users:       map[primitive.ObjectID]models.User{},
		categories:  map[primitive.ObjectID]models.Category{},
		tiers:       map[primitive.ObjectID]models.Tier{},
		tierOptions: map[primitive.ObjectID]models.TierOption{},
		products:    map[primitive.ObjectID]models.Product{},
		variants:    map[primitive.ObjectID]models.Variant{},
		stocks:      map[primitive.ObjectID]models.Stock{},
		locations:   map[primitive.ObjectID]models.Location{},
		brands:      map[primitive.ObjectID]models.Brand{},
	}
}

// NewSet returns a repositories.Set backed by a fresh Store.
func NewSet() *repositories.Set {
	return NewStore().Set()
}

// Set exposes s through the repository interfaces.
func (s *Store) Set() *repositories.Set {
	return &repositories.Set{
		Users:      &userRepo{s},
		Categories: &categoryRepo{s},
		Tiers:      &tierRepo{s},
		Products:   &productRepo{s},
		Variants:   &variantRepo{s},
		Stocks:     &stockRepo{s},
		Locations:  &locationRepo{s},
		Brands:     &brandRepo{s},
		Tx:         s,
	}
}

type txKey struct{}

// inTx reports whether ctx belongs to a transaction already holding s.mu.
func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock acquires s.mu unless ctx already owns it and returns the release func.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	users       map[primitive.ObjectID]models.User
	categories  map[primitive.ObjectID]models.Category
	tiers       map[primitive.ObjectID]models.Tier
	tierOptions map[primitive.ObjectID]models.TierOption
	products    map[primitive.ObjectID]models.Product
	variants    map[primitive.ObjectID]models.Variant
	stocks      map[primitive.ObjectID]models.Stock
	locations   map[primitive.ObjectID]models.Location
	brands      map[primitive.ObjectID]models.Brand
}

// Values in the maps are never mutated in place (writes store fresh
// clones), so copying the maps is enough.
func (s *Store) snapshot() snapshot {
	return snapshot{
		users:       maps.Clone(s.users),
		categories:  maps.Clone(s.categories),
		tiers:       maps.Clone(s.tiers),
		tierOptions: maps.Clone(s.tierOptions),
		products:    maps.Clone(s.products),
		variants:    maps.Clone(s.variants),
		stocks:      maps.Clone(s.stocks),
		locations:   maps.Clone(s.locations),
		brands:      maps.Clone(s.brands),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.categories = snap.categories
	s.tiers = snap.tiers
	s.tierOptions = snap.tierOptions
	s.products = snap.products
	s.variants = snap.variants
	s.stocks = snap.stocks
	s.locations = snap.locations
	s.brands = snap.brands
}

// WithTransaction implements database.Transactor. Nested calls join the
// outer transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

func notFound(collection string) error {
	return errors.Wrap(repositories.ErrNotFound, collection)
}
