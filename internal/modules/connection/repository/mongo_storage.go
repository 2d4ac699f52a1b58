package repository

import (
	"context"
	"errors"

	"github.com/fugui-tools/filter-bot/internal/modules/connection/domain"
	sharederrors "github.com/fugui-tools/filter-bot/internal/shared/errors"
	sharedmongo "github.com/fugui-tools/filter-bot/internal/shared/mongo"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStorage persists connections, one document per user.
type MongoStorage struct {
	coll *mongo.Collection
}

func NewMongoStorage(db *sharedmongo.DB) *MongoStorage {
	return &MongoStorage{coll: db.Collection(sharedmongo.CollectionConnections)}
}

func (s *MongoStorage) Upsert(ctx context.Context, conn *domain.Connection) error {
	update := bson.M{"$set": bson.M{
		"user_id":      conn.UserID,
		"group_id":     conn.GroupID,
		"connected_at": conn.ConnectedAt,
	}}

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"user_id": conn.UserID},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return oops.With("user_id", conn.UserID, "group_id", conn.GroupID).Wrap(err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, userID int64) (*domain.Connection, error) {
	var conn domain.Connection
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&conn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sharederrors.ErrNotConnected
		}
		return nil, oops.With("user_id", userID).Wrap(err)
	}
	return &conn, nil
}

func (s *MongoStorage) Delete(ctx context.Context, userID int64) (bool, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return false, oops.With("user_id", userID).Wrap(err)
	}
	return result.DeletedCount > 0, nil
}
