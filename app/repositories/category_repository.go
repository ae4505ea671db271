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

type MongoCategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{col: db.Collection(categoriesCollection)}
}

func (r *MongoCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return findOne[models.Category](ctx, r.col, bson.M{"_id": id})
}

func (r *MongoCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := insertOne(ctx, r.col, c)
	return err
}

func (r *MongoCategoryRepository) Update(ctx context.Context, c *models.Category) error {
	c.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.col, c.ID, c)
}

func (r *MongoCategoryRepository) Touch(ctx context.Context, id primitive.ObjectID) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"updatedAt": time.Now().UTC()}})
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *MongoCategoryRepository) CountChildren(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return count(ctx, r.col, bson.M{"parent": id})
}

func (r *MongoCategoryRepository) Roots(ctx context.Context) ([]models.Category, error) {
	return findMany[models.Category](ctx, r.col, bson.M{"parent": nil},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
}

func (r *MongoCategoryRepository) Children(ctx context.Context, parents []primitive.ObjectID) ([]models.Category, error) {
	if len(parents) == 0 {
		return []models.Category{}, nil
	}
	return findMany[models.Category](ctx, r.col, bson.M{"parent": bson.M{"$in": parents}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
}
