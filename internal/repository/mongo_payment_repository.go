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

// MongoPaymentRepository is the MongoDB implementation of PaymentRepository.
type MongoPaymentRepository struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepository creates a MongoPaymentRepository.
func NewMongoPaymentRepository(db *mongo.Database) *MongoPaymentRepository {
	return &MongoPaymentRepository{coll: db.Collection("payments")}
}

// EnsureIndexes declares the unique donationId and providerId lookups.
func (r *MongoPaymentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "donationId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	return err
}

func (r *MongoPaymentRepository) findOne(ctx context.Context, filter bson.M) (*model.Payment, error) {
	var p model.Payment
	if err := r.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		return nil, mapMongoError(err)
	}
	return &p, nil
}

func (r *MongoPaymentRepository) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoPaymentRepository) FindByDonationID(ctx context.Context, donationID string) (*model.Payment, error) {
	return r.findOne(ctx, bson.M{"donationId": donationID})
}

func (r *MongoPaymentRepository) FindByProviderID(ctx context.Context, providerID string) (*model.Payment, error) {
	return r.findOne(ctx, bson.M{"providerId": providerID})
}

func (r *MongoPaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	p.ID = uuid.NewString()
	if p.Status == "" {
		p.Status = model.PaymentStatusPending
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, p)
	return mapMongoError(err)
}

func (r *MongoPaymentRepository) SetProviderRef(ctx context.Context, id, providerID, paymentURL string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"providerId": providerID,
			"paymentUrl": paymentURL,
			"updatedAt":  time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPaymentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": model.PaymentStatusPending},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
