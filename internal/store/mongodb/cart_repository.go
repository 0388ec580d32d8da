package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartRepository embeds line items in the cart document. Save is a single
// UpdateOne filtered on the version field.
type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

func (r *CartRepository) List(ctx context.Context) ([]cart.Cart, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, byCreation)
	if err != nil {
		return nil, fmt.Errorf("find carts: %w", err)
	}
	var docs []cartDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode carts: %w", err)
	}

	carts := make([]cart.Cart, 0, len(docs))
	for _, d := range docs {
		carts = append(carts, d.model())
	}
	return carts, nil
}

func (r *CartRepository) Get(ctx context.Context, id string) (*cart.Cart, error) {
	var doc cartDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cart.ErrNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	c := doc.model()
	return &c, nil
}

func (r *CartRepository) Create(ctx context.Context, c *cart.Cart) error {
	doc := cartDoc{
		ID:         c.ID,
		Products:   toLineItemDocs(c.Products),
		TotalPrice: c.TotalPrice,
		Version:    1,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert cart: %w", err)
	}
	c.Version = 1
	return nil
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": c.ID, "version": c.Version},
		bson.M{
			"$set": bson.M{
				"products":    toLineItemDocs(c.Products),
				"total_price": c.TotalPrice,
				"updated_at":  c.UpdatedAt,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": c.ID})
		if err != nil {
			return fmt.Errorf("check cart: %w", err)
		}
		if n == 0 {
			return cart.ErrNotFound
		}
		return cart.ErrVersionConflict
	}
	c.Version++
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id string, version int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "version": version})
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if res.DeletedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("check cart: %w", err)
		}
		if n == 0 {
			return cart.ErrNotFound
		}
		return cart.ErrVersionConflict
	}
	return nil
}
