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

type MongoVariantRepository struct {
	col *mongo.Collection
}

func NewVariantRepository(db *mongo.Database) *MongoVariantRepository {
	return &MongoVariantRepository{col: db.Collection(variantsCollection)}
}

func (r *MongoVariantRepository) Create(ctx context.Context, v *models.Variant) error {
	now := time.Now().UTC()
	v.ID = primitive.NewObjectID()
	v.CreatedAt, v.UpdatedAt = now, now
	_, err := insertOne(ctx, r.col, v)
	return err
}

func (r *MongoVariantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Variant, error) {
	return findOne[models.Variant](ctx, r.col, bson.M{"_id": id})
}

func (r *MongoVariantRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Variant, error) {
	if len(ids) == 0 {
		return []models.Variant{}, nil
	}
	return findMany[models.Variant](ctx, r.col, byIDs(ids))
}

func (r *MongoVariantRepository) List(ctx context.Context, product *primitive.ObjectID) ([]models.Variant, error) {
	filter := bson.M{}
	if product != nil {
		filter["product"] = *product
	}
	return findMany[models.Variant](ctx, r.col, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *MongoVariantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *MongoVariantRepository) DeleteByProduct(ctx context.Context, product primitive.ObjectID) (int64, error) {
	return deleteMany(ctx, r.col, bson.M{"product": product})
}
