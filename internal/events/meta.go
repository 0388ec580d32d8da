package events

import "context"

type EventMeta struct {
	CorrelationID string
	CausationID   string
	PartitionKey  string
}

type metaKey struct{}

// WithMeta attaches correlation and causation ids to ctx. The HTTP layer
// sets them per request; publishers copy them into every envelope.
func WithMeta(ctx context.Context, correlationID, causationID string) context.Context {
	return context.WithValue(ctx, metaKey{}, EventMeta{CorrelationID: correlationID, CausationID: causationID})
}

// MetaFromContext returns the metadata stored by WithMeta with partitionKey
// filled in.
func MetaFromContext(ctx context.Context, partitionKey string) EventMeta {
	meta, _ := ctx.Value(metaKey{}).(EventMeta)
	meta.PartitionKey = partitionKey
	return meta
}
