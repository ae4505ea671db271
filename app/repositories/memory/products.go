package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
)

// ─── Products ─────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func cloneProduct(p models.Product) models.Product {
	p.Images = slices.Clone(p.Images)
	p.TierVariations = slices.Clone(p.TierVariations)
	p.Variants = slices.Clone(p.Variants)
	p.Attributes = slices.Clone(p.Attributes)
	if p.Brand != nil {
		b := *p.Brand
		p.Brand = &b
	}
	if p.Category != nil {
		c := *p.Category
		p.Category = &c
	}
	return p
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	defer r.s.lock(ctx)()
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.products[p.ID] = cloneProduct(*p)
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, notFound("products")
	}
	out := cloneProduct(p)
	return &out, nil
}

func (r *productRepo) List(ctx context.Context, q repositories.ProductQuery) ([]models.Product, int64, error) {
	defer r.s.lock(ctx)()
	matched := make([]models.Product, 0)
	for _, p := range r.s.products {
		if q.Category != nil && (p.Category == nil || *p.Category != *q.Category) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})

	total := int64(len(matched))
	start := min(q.Skip, total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}

	out := make([]models.Product, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, cloneProduct(p))
	}
	return out, total, nil
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	in := cloneProduct(*p)
	return r.modify(ctx, p.ID, func(stored *models.Product) {
		stored.Title = in.Title
		stored.Thumbnail = in.Thumbnail
		stored.Description = in.Description
		stored.Images = in.Images
		stored.IsAvailable = in.IsAvailable
		stored.Brand = in.Brand
		stored.Category = in.Category
		stored.TierVariations = in.TierVariations
		stored.Attributes = in.Attributes
	})
}

func (r *productRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.products[id]; !ok {
		return notFound("products")
	}
	delete(r.s.products, id)
	return nil
}

func (r *productRepo) CountByCategory(ctx context.Context, category primitive.ObjectID) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for _, p := range r.s.products {
		if p.Category != nil && *p.Category == category {
			n++
		}
	}
	return n, nil
}

// modify applies fn to a clone of the stored product and stores the result.
func (r *productRepo) modify(ctx context.Context, id primitive.ObjectID, fn func(p *models.Product)) error {
	defer r.s.lock(ctx)()
	p, ok := r.s.products[id]
	if !ok {
		return notFound("products")
	}
	p = cloneProduct(p)
	fn(&p)
	p.UpdatedAt = time.Now().UTC()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) SetVariants(ctx context.Context, id primitive.ObjectID, variants []primitive.ObjectID, stock int) error {
	return r.modify(ctx, id, func(p *models.Product) {
		p.Variants = slices.Clone(variants)
		if p.Variants == nil {
			p.Variants = []primitive.ObjectID{}
		}
		p.Stock = stock
	})
}

func (r *productRepo) AddVariant(ctx context.Context, id, variant primitive.ObjectID, stock int) error {
	return r.modify(ctx, id, func(p *models.Product) {
		p.Variants = append(p.Variants, variant)
		p.Stock += stock
	})
}

func (r *productRepo) RemoveVariant(ctx context.Context, id, variant primitive.ObjectID, stock int) error {
	return r.modify(ctx, id, func(p *models.Product) {
		p.Variants = slices.DeleteFunc(p.Variants, func(v primitive.ObjectID) bool { return v == variant })
		p.Stock -= stock
	})
}

func (r *productRepo) SetThumbnail(ctx context.Context, id primitive.ObjectID, url string) error {
	return r.modify(ctx, id, func(p *models.Product) { p.Thumbnail = url })
}

// ─── Variants ─────────────────────────────────────────────────────────────────

type variantRepo struct{ s *Store }

func cloneVariant(v models.Variant) models.Variant {
	v.Options = slices.Clone(v.Options)
	v.Images = slices.Clone(v.Images)
	return v
}

func (r *variantRepo) Create(ctx context.Context, v *models.Variant) error {
	defer r.s.lock(ctx)()
	now := time.Now().UTC()
	v.ID = primitive.NewObjectID()
	v.CreatedAt, v.UpdatedAt = now, now
	r.s.variants[v.ID] = cloneVariant(*v)
	return nil
}

func (r *variantRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Variant, error) {
	defer r.s.lock(ctx)()
	v, ok := r.s.variants[id]
	if !ok {
		return nil, notFound("variants")
	}
	out := cloneVariant(v)
	return &out, nil
}

func (r *variantRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Variant, error) {
	defer r.s.lock(ctx)()
	out := make([]models.Variant, 0, len(ids))
	for _, id := range ids {
		if v, ok := r.s.variants[id]; ok {
			out = append(out, cloneVariant(v))
		}
	}
	return out, nil
}

func (r *variantRepo) List(ctx context.Context, product *primitive.ObjectID) ([]models.Variant, error) {
	defer r.s.lock(ctx)()
	out := make([]models.Variant, 0)
	for _, v := range r.s.variants {
		if product != nil && v.Product != *product {
			continue
		}
		out = append(out, cloneVariant(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (r *variantRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.variants[id]; !ok {
		return notFound("variants")
	}
	delete(r.s.variants, id)
	return nil
}

func (r *variantRepo) DeleteByProduct(ctx context.Context, product primitive.ObjectID) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for id, v := range r.s.variants {
		if v.Product == product {
			delete(r.s.variants, id)
			n++
		}
	}
	return n, nil
}
