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

type MongoLocationRepository struct {
	col *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *MongoLocationRepository {
	return &MongoLocationRepository{col: db.Collection(locationsCollection)}
}

func (r *MongoLocationRepository) Create(ctx context.Context, l *models.Location) error {
	now := time.Now().UTC()
	l.ID = primitive.NewObjectID()
	l.CreatedAt, l.UpdatedAt = now, now
	_, err := insertOne(ctx, r.col, l)
	return err
}

func (r *MongoLocationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	return findOne[models.Location](ctx, r.col, bson.M{"_id": id})
}

func (r *MongoLocationRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Location, error) {
	if len(ids) == 0 {
		return []models.Location{}, nil
	}
	return findMany[models.Location](ctx, r.col, byIDs(ids))
}

func (r *MongoLocationRepository) Update(ctx context.Context, l *models.Location) error {
	l.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.col, l.ID, l)
}

func (r *MongoLocationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *MongoLocationRepository) List(ctx context.Context, skip, limit int64) ([]models.Location, int64, error) {
	total, err := count(ctx, r.col, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	items, err := findMany[models.Location](ctx, r.col, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
