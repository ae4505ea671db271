package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

// MongoUserRepository stores users in the users collection.
type MongoUserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection(usersCollection)}
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.M{"_id": id})
}

// FindByEmail matches case-insensitively; emails are stored lower-case.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *MongoUserRepository) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Version = 1
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := insertOne(ctx, r.col, u)
	return err
}

func (r *MongoUserRepository) Save(ctx context.Context, u *models.User) error {
	defer metrics.ObserveDB(usersCollection, "save", time.Now())

	expected := u.Version
	next := *u
	next.Version = expected + 1
	next.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID, "version": expected}, &next)
	if err != nil {
		return errors.Wrap(err, "users: save")
	}
	if res.MatchedCount == 0 {
		n, err := count(ctx, r.col, bson.M{"_id": u.ID})
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.Wrap(ErrNotFound, usersCollection)
		}
		return errors.Wrap(ErrVersionConflict, usersCollection)
	}

	u.Version = next.Version
	u.UpdatedAt = next.UpdatedAt
	return nil
}
