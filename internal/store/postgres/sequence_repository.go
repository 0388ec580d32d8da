package postgres

import (
	"context"
	"fmt"
)

// SequenceRepository hands out per-partition event sequence numbers.
type SequenceRepository struct {
	pool DBPool
}

func NewSequenceRepository(pool DBPool) *SequenceRepository {
	return &SequenceRepository{pool: pool}
}

// NextSequence atomically increments and returns the next sequence for a partition.
func (r *SequenceRepository) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, fmt.Errorf("partition key is required")
	}

	var seq int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO event_sequences (partition_key, last_sequence)
		VALUES ($1, 1)
		ON CONFLICT (partition_key)
		DO UPDATE SET last_sequence = event_sequences.last_sequence + 1, updated_at = now()
		RETURNING last_sequence
	`, partitionKey).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
