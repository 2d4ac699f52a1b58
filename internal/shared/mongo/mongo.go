// Package mongo owns the MongoDB client shared by all repositories.
package mongo

import (
	"context"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names used by the repositories.
const (
	CollectionFilters     = "filters"
	CollectionConnections = "connections"
	CollectionChannels    = "channels"
	CollectionAdmins      = "admins"
	CollectionStats       = "stats"
)

// DB wraps the driver client and the application database.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the client, verifies the connection and ensures the
// uniqueness indexes every collection relies on.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, oops.With("context", "failed to connect to MongoDB").Wrap(err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, oops.With("context", "failed to ping MongoDB").Wrap(err)
	}

	db := &DB{
		client: client,
		db:     client.Database(database),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func (d *DB) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionFilters: {
			{
				Keys:    bson.D{{Key: "chat_id", Value: 1}, {Key: "keyword", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionConnections: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionChannels: {
			{
				Keys:    bson.D{{Key: "channel_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionAdmins: {
			{
				Keys:    bson.D{{Key: "chat_id", Value: 1}, {Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionStats: {
			{
				Keys:    bson.D{{Key: "date", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for name, models := range indexes {
		if _, err := d.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return oops.With("collection", name, "context", "failed to create indexes").Wrap(err)
		}
	}

	return nil
}

// Collection returns a handle to a named collection.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping verifies the server is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

// Disconnect closes the underlying client.
func (d *DB) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
