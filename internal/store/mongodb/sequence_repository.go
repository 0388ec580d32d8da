package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SequenceRepository struct {
	coll *mongo.Collection
}

func NewSequenceRepository(db *mongo.Database) *SequenceRepository {
	return &SequenceRepository{coll: db.Collection(sequencesCollection)}
}

// NextSequence atomically increments and returns the next sequence for a partition.
func (r *SequenceRepository) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, fmt.Errorf("partition key is required")
	}

	var doc struct {
		LastSequence int64 `bson:"last_sequence"`
	}
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": partitionKey},
		bson.M{
			"$inc": bson.M{"last_sequence": int64(1)},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return doc.LastSequence, nil
}
