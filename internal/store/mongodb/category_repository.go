package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryRepository relies on the unique name index from
// Store.EnsureIndexes to report ErrDuplicate.
type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(categoriesCollection)}
}

func (r *CategoryRepository) List(ctx context.Context) ([]catalog.Category, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, byCreation)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	categories := make([]catalog.Category, 0, len(docs))
	for _, d := range docs {
		categories = append(categories, catalog.Category(d))
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id string) (catalog.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (catalog.Category, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *CategoryRepository) findOne(ctx context.Context, filter bson.M) (catalog.Category, error) {
	var doc categoryDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalog.Category{}, catalog.ErrNotFound
		}
		return catalog.Category{}, fmt.Errorf("get category: %w", err)
	}
	return catalog.Category(doc), nil
}

func (r *CategoryRepository) Create(ctx context.Context, c catalog.Category) error {
	if _, err := r.coll.InsertOne(ctx, categoryDoc(c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalog.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c catalog.Category) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{
		"$set": bson.M{"name": c.Name, "updated_at": c.UpdatedAt},
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalog.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
