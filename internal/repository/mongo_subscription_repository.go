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

// MongoSubscriptionRepository is the MongoDB implementation of
// SubscriptionRepository.
type MongoSubscriptionRepository struct {
	coll *mongo.Collection
}

// NewMongoSubscriptionRepository creates a MongoSubscriptionRepository.
func NewMongoSubscriptionRepository(db *mongo.Database) *MongoSubscriptionRepository {
	return &MongoSubscriptionRepository{coll: db.Collection("subscriptions")}
}

// EnsureIndexes declares the user lookup and sort indexes.
func (r *MongoSubscriptionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *MongoSubscriptionRepository) FindByID(ctx context.Context, id string) (*model.Subscription, error) {
	var s model.Subscription
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		return nil, mapMongoError(err)
	}
	return &s, nil
}

func (r *MongoSubscriptionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Subscription, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset)))
	if err != nil {
		return nil, err
	}
	var subs []*model.Subscription
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *MongoSubscriptionRepository) Create(ctx context.Context, s *model.Subscription) error {
	s.ID = uuid.NewString()
	if s.Status == "" {
		s.Status = model.SubscriptionStatusActive
	}
	if s.MaxChargeAttempts == 0 {
		s.MaxChargeAttempts = 3
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, s)
	return mapMongoError(err)
}

func (r *MongoSubscriptionRepository) SetStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoSubscriptionRepository) ScheduleNextPayment(ctx context.Context, id string, next time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"nextPayment":    next,
			"chargeAttempts": 0,
			"updatedAt":      time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoSubscriptionRepository) RecordChargeAttempt(ctx context.Context, id string) (int, error) {
	var s model.Subscription
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{
			"$inc": bson.M{"chargeAttempts": 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		return 0, mapMongoError(err)
	}
	return s.ChargeAttempts, nil
}
