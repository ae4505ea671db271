// Package database owns the MongoDB connection and the multi-document
// transaction boundary.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/shashiranjanraj/catalog/config"
)

// Transactor runs fn as one atomic unit of work. Every store call made with
// the ctx handed to fn takes part in the unit; if fn returns an error,
// none of its writes are kept.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Connect opens the client configured by MONGO_URI and pings the primary.
// Returns an error instead of exiting so the caller can shut down cleanly.
func Connect(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return client, nil
}

// Database returns the handle named by MONGO_DATABASE.
func Database(client *mongo.Client) *mongo.Database {
	return client.Database(config.MongoDatabase())
}

// MongoTransactor implements Transactor with client sessions. The server
// must be a replica set or sharded cluster.
type MongoTransactor struct {
	client *mongo.Client
}

func NewMongoTransactor(client *mongo.Client) *MongoTransactor {
	return &MongoTransactor{client: client}
}

// WithTransaction commits fn's writes together. The driver retries fn on
// transient transaction errors, so fn must not have side effects outside
// the store.
func (t *MongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("database: start session: %w", err)
	}
	defer sess.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadPreference(readpref.Primary()).
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	}, txOpts)
	return err
}
