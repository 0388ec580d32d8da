package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	return r.find(ctx, bson.M{"category_id": categoryID})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]catalog.Product, error) {
	cur, err := r.coll.Find(ctx, filter, byCreation)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]catalog.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.model())
	}
	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id string) (catalog.Product, error) {
	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalog.Product{}, catalog.ErrNotFound
		}
		return catalog.Product{}, fmt.Errorf("get product: %w", err)
	}
	return doc.model(), nil
}

func (r *ProductRepository) Exists(ctx context.Context, key catalog.ProductKey) (bool, error) {
	filter := bson.M{
		"name":        key.Name,
		"brand":       key.Brand,
		"description": key.Description,
		"category_id": key.CategoryID,
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return n > 0, nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"category_id": categoryID})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *ProductRepository) Create(ctx context.Context, p catalog.Product) error {
	if _, err := r.coll.InsertOne(ctx, toProductDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalog.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p catalog.Product) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, toProductDoc(p))
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
