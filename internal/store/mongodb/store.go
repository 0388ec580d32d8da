// Package mongodb implements the catalog and cart repositories on MongoDB.
// Documents are keyed by the same uuid strings the Postgres store uses.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	productsCollection   = "products"
	categoriesCollection = "categories"
	cartsCollection      = "carts"
	sequencesCollection  = "event_sequences"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri and pings the primary with exponential backoff until
// connectTimeout elapses.
func Connect(ctx context.Context, uri, database string, connectTimeout time.Duration) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	operation := func() (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return struct{}{}, client.Ping(pingCtx, readpref.Primary())
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 5 * time.Second
	if _, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxElapsedTime(connectTimeout)); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes creates the unique category name index and the lookup
// indexes used by product queries.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.db.Collection(categoriesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create category name index: %w", err)
	}
	if _, err := s.db.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "brand", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	return nil
}

func (s *Store) Products() *ProductRepository { return NewProductRepository(s.db) }
func (s *Store) Categories() *CategoryRepository { return NewCategoryRepository(s.db) }
func (s *Store) Carts() *CartRepository { return NewCartRepository(s.db) }
func (s *Store) Sequences() *SequenceRepository { return NewSequenceRepository(s.db) }

func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var byCreation = options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
