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

// MongoDonationRepository is the MongoDB implementation of DonationRepository.
type MongoDonationRepository struct {
	coll *mongo.Collection
}

// NewMongoDonationRepository creates a MongoDonationRepository.
func NewMongoDonationRepository(db *mongo.Database) *MongoDonationRepository {
	return &MongoDonationRepository{coll: db.Collection("donations")}
}

// EnsureIndexes declares the lookup and sort indexes the contract requires.
func (r *MongoDonationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "campaignId", Value: 1}}},
		{Keys: bson.D{{Key: "partnerId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}

func donationMongoFilter(filter model.DonationFilter) bson.M {
	q := bson.M{}
	if filter.UserID != "" {
		q["userId"] = filter.UserID
	}
	if filter.CampaignID != "" {
		q["campaignId"] = filter.CampaignID
	}
	if filter.PartnerID != "" {
		q["partnerId"] = filter.PartnerID
	}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	return q
}

func (r *MongoDonationRepository) FindByID(ctx context.Context, id string) (*model.Donation, error) {
	var d model.Donation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&d); err != nil {
		return nil, mapMongoError(err)
	}
	return &d, nil
}

func (r *MongoDonationRepository) List(ctx context.Context, filter model.DonationFilter, limit, offset int) ([]*model.Donation, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	cur, err := r.coll.Find(ctx, donationMongoFilter(filter), options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset)))
	if err != nil {
		return nil, err
	}
	var donations []*model.Donation
	if err := cur.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *MongoDonationRepository) Count(ctx context.Context, filter model.DonationFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, donationMongoFilter(filter))
}

func (r *MongoDonationRepository) Create(ctx context.Context, d *model.Donation) error {
	d.ID = uuid.NewString()
	if d.Status == "" {
		d.Status = model.DonationStatusPending
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, d)
	return mapMongoError(err)
}

// UpdateStatus only moves donations out of pending; terminal documents never
// match the filter.
func (r *MongoDonationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": model.DonationStatusPending},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoDonationRepository) SumCompleted(ctx context.Context, filter model.DonationFilter) (int64, error) {
	filter.Status = model.DonationStatusCompleted
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: donationMongoFilter(filter)}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	})
	if err != nil {
		return 0, err
	}
	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
