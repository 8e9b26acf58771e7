package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Pagination defaults. Comments page smaller than everything else.
const (
	DefaultLimit        = 100
	DefaultCommentLimit = 20
)

// normalizePage clamps limit/offset to sane values.
func normalizePage(limit, offset, def int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// DB exposes a liveness probe over whichever store backs the repositories.
type DB interface {
	Ping(ctx context.Context) error
}

// NewPool creates a PostgreSQL connection pool with a bounded size.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 20
	cfg.MaxConnIdleTime = 5 * time.Minute
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// NewMongoDatabase connects a MongoDB client and returns the named database.
// The caller owns the client and must Disconnect it on shutdown.
func NewMongoDatabase(ctx context.Context, uri, name string) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(20).
		SetConnectTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	return client, client.Database(name), nil
}

// Stores bundles one repository per entity. Both backends produce the same
// bundle, so nothing downstream ever branches on the backend identity.
type Stores struct {
	DB            DB
	Users         UserRepository
	Campaigns     CampaignRepository
	Partners      PartnerRepository
	Donations     DonationRepository
	Payments      PaymentRepository
	Subscriptions SubscriptionRepository
	Zakat         ZakatRepository
	Favorites     FavoriteRepository
	Comments      CommentRepository
}

type pgPinger struct{ pool *pgxpool.Pool }

func (p pgPinger) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

type mongoPinger struct{ client *mongo.Client }

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// NewPgStores wires the PostgreSQL implementation of every repository.
func NewPgStores(pool *pgxpool.Pool) *Stores {
	return &Stores{
		DB:            pgPinger{pool: pool},
		Users:         NewPgUserRepository(pool),
		Campaigns:     NewPgCampaignRepository(pool),
		Partners:      NewPgPartnerRepository(pool),
		Donations:     NewPgDonationRepository(pool),
		Payments:      NewPgPaymentRepository(pool),
		Subscriptions: NewPgSubscriptionRepository(pool),
		Zakat:         NewPgZakatRepository(pool),
		Favorites:     NewPgFavoriteRepository(pool),
		Comments:      NewPgCommentRepository(pool),
	}
}

// NewMongoStores wires the MongoDB implementation of every repository and
// ensures the indexes each repository depends on.
func NewMongoStores(ctx context.Context, client *mongo.Client, db *mongo.Database) (*Stores, error) {
	s := &Stores{
		DB:            mongoPinger{client: client},
		Users:         NewMongoUserRepository(db),
		Campaigns:     NewMongoCampaignRepository(db),
		Partners:      NewMongoPartnerRepository(db),
		Donations:     NewMongoDonationRepository(db),
		Payments:      NewMongoPaymentRepository(db),
		Subscriptions: NewMongoSubscriptionRepository(db),
		Zakat:         NewMongoZakatRepository(db),
		Favorites:     NewMongoFavoriteRepository(db),
		Comments:      NewMongoCommentRepository(db),
	}
	for _, idx := range []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		s.Users.(*MongoUserRepository),
		s.Campaigns.(*MongoCampaignRepository),
		s.Partners.(*MongoPartnerRepository),
		s.Donations.(*MongoDonationRepository),
		s.Payments.(*MongoPaymentRepository),
		s.Subscriptions.(*MongoSubscriptionRepository),
		s.Zakat.(*MongoZakatRepository),
		s.Favorites.(*MongoFavoriteRepository),
		s.Comments.(*MongoCommentRepository),
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// mapPgError translates driver errors into the repository error taxonomy.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}

// mapMongoError translates driver errors into the repository error taxonomy.
func mapMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}
