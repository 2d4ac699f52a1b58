package repository

import (
	"context"
	"errors"

	"github.com/fugui-tools/filter-bot/internal/modules/channel/domain"
	sharederrors "github.com/fugui-tools/filter-bot/internal/shared/errors"
	sharedmongo "github.com/fugui-tools/filter-bot/internal/shared/mongo"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStorage persists the channel registry, one document per channel.
type MongoStorage struct {
	coll *mongo.Collection
}

func NewMongoStorage(db *sharedmongo.DB) *MongoStorage {
	return &MongoStorage{coll: db.Collection(sharedmongo.CollectionChannels)}
}

func (s *MongoStorage) Upsert(ctx context.Context, channel *domain.Channel) error {
	update := bson.M{"$set": bson.M{
		"channel_id": channel.ChannelID,
		"title":      channel.Title,
		"added_by":   channel.AddedBy,
		"added_at":   channel.AddedAt,
		"is_active":  channel.IsActive,
	}}

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"channel_id": channel.ChannelID},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return oops.With("channel_id", channel.ChannelID).Wrap(err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, channelID int64) (*domain.Channel, error) {
	var channel domain.Channel
	err := s.coll.FindOne(ctx, bson.M{"channel_id": channelID}).Decode(&channel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sharederrors.ErrChannelNotFound
		}
		return nil, oops.With("channel_id", channelID).Wrap(err)
	}
	return &channel, nil
}

func (s *MongoStorage) ListActive(ctx context.Context, skip, limit int64) ([]domain.Channel, int64, error) {
	active := bson.M{"is_active": true}

	total, err := s.coll.CountDocuments(ctx, active)
	if err != nil {
		return nil, 0, oops.With("context", "counting active channels").Wrap(err)
	}

	cursor, err := s.coll.Find(ctx, active,
		options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}}).SetSkip(skip).SetLimit(limit),
	)
	if err != nil {
		return nil, 0, oops.With("skip", skip, "limit", limit).Wrap(err)
	}

	var channels []domain.Channel
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, 0, oops.With("skip", skip, "limit", limit).Wrap(err)
	}
	return channels, total, nil
}

func (s *MongoStorage) Delete(ctx context.Context, channelID int64) (bool, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"channel_id": channelID})
	if err != nil {
		return false, oops.With("channel_id", channelID).Wrap(err)
	}
	return result.DeletedCount > 0, nil
}
