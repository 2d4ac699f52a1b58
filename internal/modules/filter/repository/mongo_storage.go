package repository

import (
	"context"
	"errors"

	"github.com/fugui-tools/filter-bot/internal/modules/filter/domain"
	sharederrors "github.com/fugui-tools/filter-bot/internal/shared/errors"
	sharedmongo "github.com/fugui-tools/filter-bot/internal/shared/mongo"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStorage persists filters in the filters collection, one document per
// (chat_id, keyword) pair.
type MongoStorage struct {
	coll *mongo.Collection
}

func NewMongoStorage(db *sharedmongo.DB) *MongoStorage {
	return &MongoStorage{coll: db.Collection(sharedmongo.CollectionFilters)}
}

func (s *MongoStorage) Upsert(ctx context.Context, filter *domain.Filter) error {
	update := bson.M{"$set": bson.M{
		"chat_id":    filter.ChatID,
		"keyword":    filter.Keyword,
		"response":   filter.Response,
		"created_by": filter.CreatedBy,
		"created_at": filter.CreatedAt,
		"updated_at": filter.UpdatedAt,
	}}

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"chat_id": filter.ChatID, "keyword": filter.Keyword},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return oops.With("chat_id", filter.ChatID, "keyword", filter.Keyword).Wrap(err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, chatID int64, keyword string) (*domain.Filter, error) {
	var filter domain.Filter
	err := s.coll.FindOne(ctx, bson.M{"chat_id": chatID, "keyword": keyword}).Decode(&filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sharederrors.ErrFilterNotFound
		}
		return nil, oops.With("chat_id", chatID, "keyword", keyword).Wrap(err)
	}
	return &filter, nil
}

func (s *MongoStorage) List(ctx context.Context, chatID int64) ([]domain.Filter, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"chat_id": chatID},
		options.Find().SetSort(bson.D{{Key: "keyword", Value: 1}}).SetLimit(ListLimit),
	)
	if err != nil {
		return nil, oops.With("chat_id", chatID).Wrap(err)
	}

	var filters []domain.Filter
	if err := cursor.All(ctx, &filters); err != nil {
		return nil, oops.With("chat_id", chatID).Wrap(err)
	}
	return filters, nil
}

func (s *MongoStorage) Delete(ctx context.Context, chatID int64, keyword string) (bool, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"chat_id": chatID, "keyword": keyword})
	if err != nil {
		return false, oops.With("chat_id", chatID, "keyword", keyword).Wrap(err)
	}
	return result.DeletedCount > 0, nil
}
