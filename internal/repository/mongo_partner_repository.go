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

// MongoPartnerRepository is the MongoDB implementation of PartnerRepository.
type MongoPartnerRepository struct {
	coll *mongo.Collection
}

// NewMongoPartnerRepository creates a MongoPartnerRepository.
func NewMongoPartnerRepository(db *mongo.Database) *MongoPartnerRepository {
	return &MongoPartnerRepository{coll: db.Collection("partners")}
}

// EnsureIndexes declares the unique and sort indexes the contract requires.
func (r *MongoPartnerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "totalCollected", Value: -1}}},
	})
	return err
}

func partnerMongoFilter(filter model.PartnerFilter) bson.M {
	q := bson.M{}
	if filter.Type != "" {
		q["type"] = filter.Type
	}
	if filter.Country != "" {
		q["country"] = filter.Country
	}
	if filter.Category != "" {
		q["categories"] = filter.Category
	}
	if filter.Verified != nil {
		q["verified"] = *filter.Verified
	}
	return q
}

func (r *MongoPartnerRepository) FindByID(ctx context.Context, id string) (*model.Partner, error) {
	var p model.Partner
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		return nil, mapMongoError(err)
	}
	return &p, nil
}

func (r *MongoPartnerRepository) FindBySlug(ctx context.Context, slug string) (*model.Partner, error) {
	var p model.Partner
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		return nil, mapMongoError(err)
	}
	return &p, nil
}

func (r *MongoPartnerRepository) List(ctx context.Context, filter model.PartnerFilter, limit, offset int) ([]*model.Partner, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	cur, err := r.coll.Find(ctx, partnerMongoFilter(filter), options.Find().
		SetSort(bson.D{{Key: "totalCollected", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset)))
	if err != nil {
		return nil, err
	}
	var partners []*model.Partner
	if err := cur.All(ctx, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *MongoPartnerRepository) Create(ctx context.Context, p *model.Partner) error {
	p.ID = uuid.NewString()
	if p.Categories == nil {
		p.Categories = []string{}
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, p)
	return mapMongoError(err)
}

func (r *MongoPartnerRepository) Update(ctx context.Context, id string, patch model.PartnerPatch) (*model.Partner, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Verified != nil {
		set["verified"] = *patch.Verified
	}
	if patch.Country != nil {
		set["country"] = *patch.Country
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.Categories != nil {
		set["categories"] = *patch.Categories
	}
	var p model.Partner
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, mapMongoError(err)
	}
	return &p, nil
}

func (r *MongoPartnerRepository) ApplyDonation(ctx context.Context, id string, amount int64) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{
			"$inc": bson.M{"totalCollected": amount, "totalDonors": 1},
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

func (r *MongoPartnerRepository) IncrementProjectCount(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{
			"$inc": bson.M{"projectCount": 1},
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
