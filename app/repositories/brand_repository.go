package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/catalog/app/models"
)

type MongoBrandRepository struct {
	col *mongo.Collection
}

func NewBrandRepository(db *mongo.Database) *MongoBrandRepository {
	return &MongoBrandRepository{col: db.Collection(brandsCollection)}
}

// Create lower-cases the name; a taken name yields ErrDuplicate.
func (r *MongoBrandRepository) Create(ctx context.Context, b *models.Brand) error {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.Name = strings.ToLower(strings.TrimSpace(b.Name))
	b.CreatedAt, b.UpdatedAt = now, now
	_, err := insertOne(ctx, r.col, b)
	return err
}

func (r *MongoBrandRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	return findOne[models.Brand](ctx, r.col, bson.M{"_id": id})
}

func (r *MongoBrandRepository) List(ctx context.Context) ([]models.Brand, error) {
	return findMany[models.Brand](ctx, r.col, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}
