package memory

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/repositories"
)

// ─── Stocks ───────────────────────────────────────────────────────────────────

type stockRepo struct{ s *Store }

func cloneStock(st models.Stock) models.Stock {
	if st.Variant != nil {
		v := *st.Variant
		st.Variant = &v
	}
	return st
}

func (r *stockRepo) Create(ctx context.Context, st *models.Stock) error {
	defer r.s.lock(ctx)()
	now := time.Now().UTC()
	st.ID = primitive.NewObjectID()
	st.CreatedAt, st.UpdatedAt = now, now
	r.s.stocks[st.ID] = cloneStock(*st)
	return nil
}

func (r *stockRepo) List(ctx context.Context, q repositories.StockQuery) ([]models.Stock, error) {
	defer r.s.lock(ctx)()
	out := make([]models.Stock, 0)
	for _, st := range r.s.stocks {
		if q.Product != nil && st.Product != *q.Product {
			continue
		}
		if q.Variant != nil && (st.Variant == nil || *st.Variant != *q.Variant) {
			continue
		}
		out = append(out, cloneStock(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (r *stockRepo) CountByLocation(ctx context.Context, location primitive.ObjectID) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for _, st := range r.s.stocks {
		if st.Location == location {
			n++
		}
	}
	return n, nil
}

func (r *stockRepo) DeleteByProduct(ctx context.Context, product primitive.ObjectID) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for id, st := range r.s.stocks {
		if st.Product == product {
			delete(r.s.stocks, id)
			n++
		}
	}
	return n, nil
}

func (r *stockRepo) DeleteByVariant(ctx context.Context, variant primitive.ObjectID) (int64, error) {
	defer r.s.lock(ctx)()
	var n int64
	for id, st := range r.s.stocks {
		if st.Variant != nil && *st.Variant == variant {
			delete(r.s.stocks, id)
			n++
		}
	}
	return n, nil
}

// ─── Locations ────────────────────────────────────────────────────────────────

type locationRepo struct{ s *Store }

func (r *locationRepo) Create(ctx context.Context, l *models.Location) error {
	defer r.s.lock(ctx)()
	now := time.Now().UTC()
	l.ID = primitive.NewObjectID()
	l.CreatedAt, l.UpdatedAt = now, now
	r.s.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	defer r.s.lock(ctx)()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, notFound("locations")
	}
	return &l, nil
}

func (r *locationRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Location, error) {
	defer r.s.lock(ctx)()
	out := make([]models.Location, 0, len(ids))
	for _, id := range ids {
		if l, ok := r.s.locations[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *locationRepo) Update(ctx context.Context, l *models.Location) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.locations[l.ID]; !ok {
		return notFound("locations")
	}
	l.UpdatedAt = time.Now().UTC()
	r.s.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.locations[id]; !ok {
		return notFound("locations")
	}
	delete(r.s.locations, id)
	return nil
}

func (r *locationRepo) List(ctx context.Context, skip, limit int64) ([]models.Location, int64, error) {
	defer r.s.lock(ctx)()
	all := make([]models.Location, 0, len(r.s.locations))
	for _, l := range r.s.locations {
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.Hex() < all[j].ID.Hex() })

	total := int64(len(all))
	start := min(skip, total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}
	return all[start:end], total, nil
}
