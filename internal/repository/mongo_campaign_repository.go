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

// MongoCampaignRepository is the MongoDB implementation of CampaignRepository.
type MongoCampaignRepository struct {
	coll *mongo.Collection
}

// NewMongoCampaignRepository creates a MongoCampaignRepository.
func NewMongoCampaignRepository(db *mongo.Database) *MongoCampaignRepository {
	return &MongoCampaignRepository{coll: db.Collection("campaigns")}
}

// EnsureIndexes declares the unique and filter indexes the contract requires.
func (r *MongoCampaignRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "partnerId", Value: 1}}},
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}

func campaignMongoFilter(filter model.CampaignFilter) bson.M {
	q := bson.M{}
	if filter.Category != "" {
		q["category"] = filter.Category
	}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.Type != "" {
		q["type"] = filter.Type
	}
	if filter.PartnerID != "" {
		q["partnerId"] = filter.PartnerID
	}
	if filter.AuthorID != "" {
		q["authorId"] = filter.AuthorID
	}
	if filter.Urgent != nil {
		q["urgent"] = *filter.Urgent
	}
	if filter.Verified != nil {
		q["verified"] = *filter.Verified
	}
	return q
}

func (r *MongoCampaignRepository) FindByID(ctx context.Context, id string) (*model.Campaign, error) {
	var c model.Campaign
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		return nil, mapMongoError(err)
	}
	return &c, nil
}

func (r *MongoCampaignRepository) FindBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	var c model.Campaign
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&c); err != nil {
		return nil, mapMongoError(err)
	}
	return &c, nil
}

func (r *MongoCampaignRepository) List(ctx context.Context, filter model.CampaignFilter, limit, offset int) ([]*model.Campaign, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	cur, err := r.coll.Find(ctx, campaignMongoFilter(filter), options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset)))
	if err != nil {
		return nil, err
	}
	var campaigns []*model.Campaign
	if err := cur.All(ctx, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *MongoCampaignRepository) Count(ctx context.Context, filter model.CampaignFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, campaignMongoFilter(filter))
}

func (r *MongoCampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	c.ID = uuid.NewString()
	if c.Status == "" {
		c.Status = model.CampaignStatusActive
	}
	if c.ModerationStatus == "" {
		c.ModerationStatus = model.ModerationPending
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, c)
	return mapMongoError(err)
}

func (r *MongoCampaignRepository) Update(ctx context.Context, id string, patch model.CampaignPatch) (*model.Campaign, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.FullDescription != nil {
		set["fullDescription"] = *patch.FullDescription
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Goal != nil {
		set["goal"] = *patch.Goal
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Urgent != nil {
		set["urgent"] = *patch.Urgent
	}
	if patch.Verified != nil {
		set["verified"] = *patch.Verified
	}
	if patch.ModerationStatus != nil {
		set["moderationStatus"] = *patch.ModerationStatus
	}
	if patch.Deadline != nil {
		set["deadline"] = *patch.Deadline
	}
	var c model.Campaign
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &c, nil
}

func (r *MongoCampaignRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ApplyDonation leans on single-document atomicity of $inc.
func (r *MongoCampaignRepository) ApplyDonation(ctx context.Context, id string, amount int64) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{
			"$inc": bson.M{"collected": amount, "participantCount": 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
