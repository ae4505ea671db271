package services_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/app/repositories/memory"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/storage"
)

type fixture struct {
	ctx   context.Context
	svc   *services.Services
	repos *repositories.Set
	disk  *storage.LocalDisk
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewSet()
	disk := storage.NewLocalDisk(t.TempDir(), "/public")
	return &fixture{
		ctx:   context.Background(),
		svc:   services.New(repos, cache.NewMemoryStore(), disk, 1<<10),
		repos: repos,
		disk:  disk,
	}
}

func (f *fixture) tier(t *testing.T, name string, values ...string) *models.TierDetail {
	t.Helper()
	in := services.TierInput{Name: name}
	for _, v := range values {
		in.Options = append(in.Options, services.TierOptionInput{Value: v})
	}
	tier, err := f.svc.Tiers.Create(f.ctx, in)
	require.NoError(t, err)
	return tier
}

func (f *fixture) location(t *testing.T) *models.Location {
	t.Helper()
	l, err := f.svc.Locations.Create(f.ctx, services.LocationInput{Name: "Main", Address: "1 Warehouse Rd"})
	require.NoError(t, err)
	return l
}

func (f *fixture) category(t *testing.T, name string, parent *models.Category) *models.Category {
	t.Helper()
	in := services.CategoryInput{Name: name}
	if parent != nil {
		in.Parent = parent.ID.Hex()
	}
	c, err := f.svc.Categories.Create(f.ctx, in)
	require.NoError(t, err)
	return c
}

// option returns the id of the option with value in tier.
func option(t *testing.T, tier *models.TierDetail, value string) string {
	t.Helper()
	for _, o := range tier.Options {
		if o.Value == value {
			return o.ID.Hex()
		}
	}
	t.Fatalf("tier %s has no option %q", tier.Name, value)
	return ""
}

// hookedProducts runs after once, right after the first FindByID returns.
type hookedProducts struct {
	repositories.ProductRepository
	after func()
}

func (r *hookedProducts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, err := r.ProductRepository.FindByID(ctx, id)
	if after := r.after; after != nil {
		r.after = nil
		after()
	}
	return p, err
}

// failingTiers stores options normally but fails every tier insert. It
// records the ids of the options it wrote.
type failingTiers struct {
	repositories.TierRepository
	options []primitive.ObjectID
}

func (r *failingTiers) CreateOptions(ctx context.Context, opts []models.TierOption) error {
	err := r.TierRepository.CreateOptions(ctx, opts)
	for _, o := range opts {
		r.options = append(r.options, o.ID)
	}
	return err
}

func (r *failingTiers) Create(context.Context, *models.Tier) error {
	return errors.New("tiers: insert: connection reset by peer")
}

// conflictingUsers loses every versioned save.
type conflictingUsers struct {
	repositories.UserRepository
	saves int
}

func (r *conflictingUsers) Save(context.Context, *models.User) error {
	r.saves++
	return repositories.ErrVersionConflict
}
