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

// MongoCommentRepository is the MongoDB implementation of CommentRepository.
type MongoCommentRepository struct {
	coll *mongo.Collection
}

// NewMongoCommentRepository creates a MongoCommentRepository.
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{coll: db.Collection("comments")}
}

// EnsureIndexes declares the campaign feed lookup.
func (r *MongoCommentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *MongoCommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		return nil, mapMongoError(err)
	}
	return &c, nil
}

func (r *MongoCommentRepository) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Comment, error) {
	limit, offset = normalizePage(limit, offset, DefaultCommentLimit)
	cur, err := r.coll.Find(ctx, bson.M{"campaignId": campaignID}, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset)))
	if err != nil {
		return nil, err
	}
	var comments []*model.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *MongoCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, c)
	return mapMongoError(err)
}

// Delete enforces ownership in the query itself.
func (r *MongoCommentRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "userId": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
