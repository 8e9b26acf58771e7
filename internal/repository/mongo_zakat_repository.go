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

// MongoZakatRepository is the MongoDB implementation of ZakatRepository.
type MongoZakatRepository struct {
	coll *mongo.Collection
}

// NewMongoZakatRepository creates a MongoZakatRepository.
func NewMongoZakatRepository(db *mongo.Database) *MongoZakatRepository {
	return &MongoZakatRepository{coll: db.Collection("zakat_calculations")}
}

// EnsureIndexes declares the user history lookup.
func (r *MongoZakatRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *MongoZakatRepository) Create(ctx context.Context, calc *model.ZakatCalculation) error {
	calc.ID = uuid.NewString()
	calc.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, calc)
	return mapMongoError(err)
}

func (r *MongoZakatRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.ZakatCalculation, error) {
	limit, offset = normalizePage(limit, offset, DefaultLimit)
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset)))
	if err != nil {
		return nil, err
	}
	var calcs []*model.ZakatCalculation
	if err := cur.All(ctx, &calcs); err != nil {
		return nil, err
	}
	return calcs, nil
}
