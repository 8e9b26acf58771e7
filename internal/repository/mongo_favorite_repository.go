package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sadaqa/backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFavoriteRepository is the MongoDB implementation of FavoriteRepository.
type MongoFavoriteRepository struct {
	coll *mongo.Collection
}

// NewMongoFavoriteRepository creates a MongoFavoriteRepository.
func NewMongoFavoriteRepository(db *mongo.Database) *MongoFavoriteRepository {
	return &MongoFavoriteRepository{coll: db.Collection("favorites")}
}

// EnsureIndexes declares the unique (userId, campaignId) pair.
func (r *MongoFavoriteRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "campaignId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func (r *MongoFavoriteRepository) FindByUserAndCampaign(ctx context.Context, userID, campaignID string) (*model.Favorite, error) {
	var f model.Favorite
	err := r.coll.FindOne(ctx, bson.M{"userId": userID, "campaignId": campaignID}).Decode(&f)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &f, nil
}

func (r *MongoFavoriteRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Favorite, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset)))
	if err != nil {
		return nil, err
	}
	var favs []*model.Favorite
	if err := cur.All(ctx, &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

func (r *MongoFavoriteRepository) Create(ctx context.Context, f *model.Favorite) error {
	f.ID = uuid.NewString()
	f.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, f)
	return mapMongoError(err)
}

func (r *MongoFavoriteRepository) Delete(ctx context.Context, userID, campaignID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID, "campaignId": campaignID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
