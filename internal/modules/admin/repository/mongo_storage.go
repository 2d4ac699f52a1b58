package repository

import (
	"context"
	"errors"

	"github.com/fugui-tools/filter-bot/internal/modules/admin/domain"
	sharedmongo "github.com/fugui-tools/filter-bot/internal/shared/mongo"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStorage persists admin grants, one document per (chat_id, user_id).
type MongoStorage struct {
	coll *mongo.Collection
}

func NewMongoStorage(db *sharedmongo.DB) *MongoStorage {
	return &MongoStorage{coll: db.Collection(sharedmongo.CollectionAdmins)}
}

func (s *MongoStorage) Upsert(ctx context.Context, grant *domain.Grant) error {
	update := bson.M{"$set": bson.M{
		"chat_id":    grant.ChatID,
		"user_id":    grant.UserID,
		"granted_by": grant.GrantedBy,
		"granted_at": grant.GrantedAt,
	}}

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"chat_id": grant.ChatID, "user_id": grant.UserID},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return oops.With("chat_id", grant.ChatID, "user_id", grant.UserID).Wrap(err)
	}
	return nil
}

func (s *MongoStorage) Exists(ctx context.Context, chatID, userID int64) (bool, error) {
	err := s.coll.FindOne(ctx, bson.M{"chat_id": chatID, "user_id": userID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, oops.With("chat_id", chatID, "user_id", userID).Wrap(err)
	}
	return true, nil
}

func (s *MongoStorage) Delete(ctx context.Context, chatID, userID int64) (bool, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"chat_id": chatID, "user_id": userID})
	if err != nil {
		return false, oops.With("chat_id", chatID, "user_id", userID).Wrap(err)
	}
	return result.DeletedCount > 0, nil
}
