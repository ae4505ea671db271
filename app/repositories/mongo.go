package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/metrics"
)

const (
	usersCollection       = "users"
	categoriesCollection  = "categories"
	tiersCollection       = "tiers"
	tierOptionsCollection = "tieroptions"
	productsCollection    = "products"
	variantsCollection    = "variants"
	stocksCollection      = "stocks"
	locationsCollection   = "locations"
	brandsCollection      = "brands"
)

// NewMongoSet wires every repository to db and transactions to client.
func NewMongoSet(client *mongo.Client, db *mongo.Database) *Set {
	return &Set{
		Users:      NewUserRepository(db),
		Categories: NewCategoryRepository(db),
		Tiers:      NewTierRepository(db),
		Products:   NewProductRepository(db),
		Variants:   NewVariantRepository(db),
		Stocks:     NewStockRepository(db),
		Locations:  NewLocationRepository(db),
		Brands:     NewBrandRepository(db),
		Tx:         database.NewMongoTransactor(client),
	}
}

// EnsureIndexes creates the indexes the queries above rely on. It is
// idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		categoriesCollection: {
			{Keys: bson.D{{Key: "parent", Value: 1}}},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		},
		variantsCollection: {
			{Keys: bson.D{{Key: "product", Value: 1}}},
		},
		stocksCollection: {
			{Keys: bson.D{{Key: "product", Value: 1}, {Key: "variant", Value: 1}}},
			{Keys: bson.D{{Key: "variant", Value: 1}}},
			{Keys: bson.D{{Key: "location", Value: 1}}},
		},
		brandsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, idx := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return errors.Wrapf(err, "create indexes on %s", name)
		}
	}
	return nil
}

// EnsureCollections creates the collections up front. Multi-document
// transactions cannot create a collection implicitly on older servers.
func EnsureCollections(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return errors.Wrap(err, "list collections")
	}
	have := make(map[string]bool, len(existing))
	for _, n := range existing {
		have[n] = true
	}
	for _, name := range []string{
		usersCollection, categoriesCollection, tiersCollection, tierOptionsCollection,
		productsCollection, variantsCollection, stocksCollection, locationsCollection, brandsCollection,
	} {
		if have[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil && !isNamespaceExists(err) {
			return errors.Wrapf(err, "create collection %s", name)
		}
	}
	return nil
}

func isNamespaceExists(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == 48
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter any) (*T, error) {
	defer metrics.ObserveDB(col.Name(), "find_one", time.Now())

	var out T
	if err := col.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrapf(ErrNotFound, "%s", col.Name())
		}
		return nil, errors.Wrapf(err, "%s: find one", col.Name())
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	defer metrics.ObserveDB(col.Name(), "find", time.Now())

	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: find", col.Name())
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrapf(err, "%s: decode", col.Name())
	}
	return out, nil
}

func insertOne(ctx context.Context, col *mongo.Collection, doc any) (primitive.ObjectID, error) {
	defer metrics.ObserveDB(col.Name(), "insert", time.Now())

	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, errors.Wrapf(ErrDuplicate, "%s", col.Name())
		}
		return primitive.NilObjectID, errors.Wrapf(err, "%s: insert", col.Name())
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func updateByID(ctx context.Context, col *mongo.Collection, id primitive.ObjectID, update any) error {
	defer metrics.ObserveDB(col.Name(), "update", time.Now())

	res, err := col.UpdateByID(ctx, id, update)
	if err != nil {
		return errors.Wrapf(err, "%s: update", col.Name())
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(ErrNotFound, "%s", col.Name())
	}
	return nil
}

func replaceByID(ctx context.Context, col *mongo.Collection, id primitive.ObjectID, doc any) error {
	defer metrics.ObserveDB(col.Name(), "replace", time.Now())

	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Wrapf(ErrDuplicate, "%s", col.Name())
		}
		return errors.Wrapf(err, "%s: replace", col.Name())
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(ErrNotFound, "%s", col.Name())
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id primitive.ObjectID) error {
	defer metrics.ObserveDB(col.Name(), "delete", time.Now())

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrapf(err, "%s: delete", col.Name())
	}
	if res.DeletedCount == 0 {
		return errors.Wrapf(ErrNotFound, "%s", col.Name())
	}
	return nil
}

func deleteMany(ctx context.Context, col *mongo.Collection, filter any) (int64, error) {
	defer metrics.ObserveDB(col.Name(), "delete_many", time.Now())

	res, err := col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: delete many", col.Name())
	}
	return res.DeletedCount, nil
}

func count(ctx context.Context, col *mongo.Collection, filter any) (int64, error) {
	defer metrics.ObserveDB(col.Name(), "count", time.Now())

	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: count", col.Name())
	}
	return n, nil
}

func byIDs(ids []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": ids}}
}
