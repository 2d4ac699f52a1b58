package repository

import (
	"context"
	"time"

	"github.com/fugui-tools/filter-bot/internal/modules/stats/domain"
	sharedmongo "github.com/fugui-tools/filter-bot/internal/shared/mongo"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStorage persists daily usage counters, one document per UTC day.
type MongoStorage struct {
	coll *mongo.Collection
}

func NewMongoStorage(db *sharedmongo.DB) *MongoStorage {
	return &MongoStorage{coll: db.Collection(sharedmongo.CollectionStats)}
}

func (s *MongoStorage) Increment(ctx context.Context, day time.Time, command string, userID, chatID int64) error {
	update := bson.M{
		"$inc":      bson.M{"commands." + command: 1, "total": 1},
		"$addToSet": bson.M{"users": userID, "chats": chatID},
	}

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"date": day},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return oops.With("command", command, "date", day).Wrap(err)
	}
	return nil
}

func (s *MongoStorage) ListSince(ctx context.Context, since time.Time) ([]domain.Daily, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"date": bson.M{"$gte": since}},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}),
	)
	if err != nil {
		return nil, oops.With("since", since).Wrap(err)
	}

	var days []domain.Daily
	if err := cursor.All(ctx, &days); err != nil {
		return nil, oops.With("since", since).Wrap(err)
	}
	return days, nil
}
