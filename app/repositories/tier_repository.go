package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

type MongoTierRepository struct {
	tiers   *mongo.Collection
	options *mongo.Collection
}

func NewTierRepository(db *mongo.Database) *MongoTierRepository {
	return &MongoTierRepository{
		tiers:   db.Collection(tiersCollection),
		options: db.Collection(tierOptionsCollection),
	}
}

func (r *MongoTierRepository) CreateOptions(ctx context.Context, opts []models.TierOption) error {
	if len(opts) == 0 {
		return nil
	}
	defer metrics.ObserveDB(tierOptionsCollection, "insert_many", time.Now())

	docs := make([]any, len(opts))
	for i := range opts {
		opts[i].ID = primitive.NewObjectID()
		docs[i] = opts[i]
	}
	if _, err := r.options.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(err, "tieroptions: insert many")
	}
	return nil
}

func (r *MongoTierRepository) Create(ctx context.Context, t *models.Tier) error {
	t.ID = primitive.NewObjectID()
	_, err := insertOne(ctx, r.tiers, t)
	return err
}

func (r *MongoTierRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tier, error) {
	return findOne[models.Tier](ctx, r.tiers, bson.M{"_id": id})
}

func (r *MongoTierRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tier, error) {
	if len(ids) == 0 {
		return []models.Tier{}, nil
	}
	return findMany[models.Tier](ctx, r.tiers, byIDs(ids))
}

func (r *MongoTierRepository) List(ctx context.Context) ([]models.Tier, error) {
	return findMany[models.Tier](ctx, r.tiers, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *MongoTierRepository) FindOptionByID(ctx context.Context, id primitive.ObjectID) (*models.TierOption, error) {
	return findOne[models.TierOption](ctx, r.options, bson.M{"_id": id})
}

func (r *MongoTierRepository) FindOptionsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.TierOption, error) {
	if len(ids) == 0 {
		return []models.TierOption{}, nil
	}
	return findMany[models.TierOption](ctx, r.options, byIDs(ids))
}
