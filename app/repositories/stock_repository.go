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

type MongoStockRepository struct {
	col *mongo.Collection
}

func NewStockRepository(db *mongo.Database) *MongoStockRepository {
	return &MongoStockRepository{col: db.Collection(stocksCollection)}
}

func (r *MongoStockRepository) Create(ctx context.Context, s *models.Stock) error {
	now := time.Now().UTC()
	s.ID = primitive.NewObjectID()
	s.CreatedAt, s.UpdatedAt = now, now
	_, err := insertOne(ctx, r.col, s)
	return err
}

func (r *MongoStockRepository) List(ctx context.Context, q StockQuery) ([]models.Stock, error) {
	filter := bson.M{}
	if q.Product != nil {
		filter["product"] = *q.Product
	}
	if q.Variant != nil {
		filter["variant"] = *q.Variant
	}
	return findMany[models.Stock](ctx, r.col, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *MongoStockRepository) CountByLocation(ctx context.Context, location primitive.ObjectID) (int64, error) {
	return count(ctx, r.col, bson.M{"location": location})
}

func (r *MongoStockRepository) DeleteByProduct(ctx context.Context, product primitive.ObjectID) (int64, error) {
	return deleteMany(ctx, r.col, bson.M{"product": product})
}

func (r *MongoStockRepository) DeleteByVariant(ctx context.Context, variant primitive.ObjectID) (int64, error) {
	return deleteMany(ctx, r.col, bson.M{"variant": variant})
}
