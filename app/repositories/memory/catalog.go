package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
)

// ─── Categories ───────────────────────────────────────────────────────────────

type categoryRepo struct{ s *Store }

func cloneCategory(c models.Category) models.Category {
	if c.Parent != nil {
		p := *c.Parent
		c.Parent = &p
	}
	return c
}

func sortCategories(cs []models.Category) {
	sort.Slice(cs, func(i, j int) bool {
		if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].CreatedAt.Before(cs[j].CreatedAt)
		}
		return cs[i].ID.Hex() < cs[j].ID.Hex()
	})
}

func (r *categoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	defer r.s.lock(ctx)()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, notFound("categories")
	}
	out := cloneCategory(c)
	return &out, nil
}

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	defer r.s.lock(ctx)()
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.categories[c.ID] = cloneCategory(*c)
	return nil
}

func (r *categoryRepo) Update(ctx context.Context, c *models.Category) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.categories[c.ID]; !ok {
		return notFound("categories")
	}
	c.UpdatedAt = time.Now().UTC()
	r.s.categories[c.ID] = cloneCategory(*c)
	return nil
}

func (r *categoryRepo) Touch(ctx context.Context, id primitive.ObjectID) error {
	defer r.s.lock(ctx)()
	c, ok := r.s.categories[id]
	if !ok {
		return notFound("categories")
	}
	c = cloneCategory(c)
	c.UpdatedAt = time.Now().UTC()
	r.s.categories[id] = c
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.categories[id]; !ok {
		return notFound("categories")
	}
	delete(r.s.categories, id)
	return nil
}

func (r *categoryRepo) CountChildren(ctx context.Context, id primitive.ObjectID) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for _, c := range r.s.categories {
		if c.Parent != nil && *c.Parent == id {
			n++
		}
	}
	return n, nil
}

func (r *categoryRepo) Roots(ctx context.Context) ([]models.Category, error) {
	defer r.s.lock(ctx)()
	out := make([]models.Category, 0)
	for _, c := range r.s.categories {
		if c.Parent == nil {
			out = append(out, cloneCategory(c))
		}
	}
	sortCategories(out)
	return out, nil
}

func (r *categoryRepo) Children(ctx context.Context, parents []primitive.ObjectID) ([]models.Category, error) {
	defer r.s.lock(ctx)()
	out := make([]models.Category, 0)
	for _, c := range r.s.categories {
		if c.Parent != nil && slices.Contains(parents, *c.Parent) {
			out = append(out, cloneCategory(c))
		}
	}
	sortCategories(out)
	return out, nil
}

// ─── Tiers ────────────────────────────────────────────────────────────────────

type tierRepo struct{ s *Store }

func cloneTier(t models.Tier) models.Tier {
	t.Options = slices.Clone(t.Options)
	return t
}

func (r *tierRepo) CreateOptions(ctx context.Context, opts []models.TierOption) error {
	defer r.s.lock(ctx)()
	for i := range opts {
		opts[i].ID = primitive.NewObjectID()
		r.s.tierOptions[opts[i].ID] = opts[i]
	}
	return nil
}

func (r *tierRepo) Create(ctx context.Context, t *models.Tier) error {
	defer r.s.lock(ctx)()
	t.ID = primitive.NewObjectID()
	r.s.tiers[t.ID] = cloneTier(*t)
	return nil
}

func (r *tierRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tier, error) {
	defer r.s.lock(ctx)()
	t, ok := r.s.tiers[id]
	if !ok {
		return nil, notFound("tiers")
	}
	out := cloneTier(t)
	return &out, nil
}

func (r *tierRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tier, error) {
	defer r.s.lock(ctx)()
	out := make([]models.Tier, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.s.tiers[id]; ok {
			out = append(out, cloneTier(t))
		}
	}
	return out, nil
}

func (r *tierRepo) List(ctx context.Context) ([]models.Tier, error) {
	defer r.s.lock(ctx)()
	out := make([]models.Tier, 0, len(r.s.tiers))
	for _, t := range r.s.tiers {
		out = append(out, cloneTier(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (r *tierRepo) FindOptionByID(ctx context.Context, id primitive.ObjectID) (*models.TierOption, error) {
	defer r.s.lock(ctx)()
	o, ok := r.s.tierOptions[id]
	if !ok {
		return nil, notFound("tieroptions")
	}
	return &o, nil
}

func (r *tierRepo) FindOptionsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.TierOption, error) {
	defer r.s.lock(ctx)()
	out := make([]models.TierOption, 0, len(ids))
	for _, id := range ids {
		if o, ok := r.s.tierOptions[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

// ─── Brands ───────────────────────────────────────────────────────────────────

type brandRepo struct{ s *Store }

func (r *brandRepo) Create(ctx context.Context, b *models.Brand) error {
	defer r.s.lock(ctx)()
	name := strings.ToLower(strings.TrimSpace(b.Name))
	for _, existing := range r.s.brands {
		if existing.Name == name {
			return errors.Wrap(repositories.ErrDuplicate, "brands")
		}
	}
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.Name = name
	b.CreatedAt, b.UpdatedAt = now, now
	r.s.brands[b.ID] = *b
	return nil
}

func (r *brandRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	defer r.s.lock(ctx)()
	b, ok := r.s.brands[id]
	if !ok {
		return nil, notFound("brands")
	}
	return &b, nil
}

func (r *brandRepo) List(ctx context.Context) ([]models.Brand, error) {
	defer r.s.lock(ctx)()
	out := make([]models.Brand, 0, len(r.s.brands))
	for _, b := range r.s.brands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
