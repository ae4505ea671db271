package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/catalog/app/models"
)

type MongoProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{col: db.Collection(productsCollection)}
}

func (r *MongoProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := insertOne(ctx, r.col, p)
	return err
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return findOne[models.Product](ctx, r.col, bson.M{"_id": id})
}

func (r *MongoProductRepository) List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	filter := bson.M{}
	if q.Category != nil {
		filter["category"] = *q.Category
	}

	total, err := count(ctx, r.col, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)
	items, err := findMany[models.Product](ctx, r.col, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update sets the header fields of p. The variant list and stock counter
// are left alone; they change only through SetVariants, AddVariant and
// RemoveVariant.
func (r *MongoProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()
	return updateByID(ctx, r.col, p.ID, bson.M{"$set": bson.M{
		"title":           p.Title,
		"thumbnail":       p.Thumbnail,
		"description":     p.Description,
		"images":          p.Images,
		"isAvailable":     p.IsAvailable,
		"brand":           p.Brand,
		"category":        p.Category,
		"tier_variations": p.TierVariations,
		"attributes":      p.Attributes,
		"updatedAt":       p.UpdatedAt,
	}})
}

func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *MongoProductRepository) CountByCategory(ctx context.Context, category primitive.ObjectID) (int64, error) {
	return count(ctx, r.col, bson.M{"category": category})
}

func (r *MongoProductRepository) SetVariants(ctx context.Context, id primitive.ObjectID, variants []primitive.ObjectID, stock int) error {
	if variants == nil {
		variants = []primitive.ObjectID{}
	}
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{
		"product_variants": variants,
		"stock":            stock,
		"updatedAt":        time.Now().UTC(),
	}})
}

func (r *MongoProductRepository) AddVariant(ctx context.Context, id, variant primitive.ObjectID, stock int) error {
	return updateByID(ctx, r.col, id, bson.M{
		"$push": bson.M{"product_variants": variant},
		"$inc":  bson.M{"stock": stock},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *MongoProductRepository) RemoveVariant(ctx context.Context, id, variant primitive.ObjectID, stock int) error {
	return updateByID(ctx, r.col, id, bson.M{
		"$pull": bson.M{"product_variants": variant},
		"$inc":  bson.M{"stock": -stock},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *MongoProductRepository) SetThumbnail(ctx context.Context, id primitive.ObjectID, url string) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{
		"thumbnail": url,
		"updatedAt": time.Now().UTC(),
	}})
}
