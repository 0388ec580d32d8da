package events

import (
	"fmt"
	"time"
)

const (
	EventTypeCartUpdated    = "CartUpdated"
	EventTypeCartRemoved    = "CartRemoved"
	EventTypeProductDeleted = "ProductDeleted"

	cartUpdatedSchema    = "contracts/events/cart/CartUpdated.v1.enveloped.schema.json"
	cartRemovedSchema    = "contracts/events/cart/CartRemoved.v1.enveloped.schema.json"
	productDeletedSchema = "contracts/events/catalog/ProductDeleted.v1.enveloped.schema.json"
)

// EventEnvelope represents the shared envelope for v1 contracts.
type EventEnvelope struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CausationID   string    `json:"causationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      int64     `json:"sequence"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
}

func (e EventEnvelope) Validate(expectedName string, expectedVersion int) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName %q", e.EventName)
	}
	if e.EventVersion != expectedVersion {
		return fmt.Errorf("unexpected eventVersion %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	if e.EventID == "" {
		return fmt.Errorf("missing eventId")
	}
	if e.Sequence < 1 {
		return fmt.Errorf("sequence must be positive, got %d", e.Sequence)
	}
	return nil
}

type CartLine struct {
	ProductID      string  `json:"productId"`
	Quantity       int     `json:"quantity"`
	TotalItemPrice float64 `json:"totalItemPrice"`
}

type CartUpdatedPayload struct {
	CartID     string     `json:"cartId"`
	Products   []CartLine `json:"products"`
	TotalPrice float64    `json:"totalPrice"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type CartUpdatedEvent struct {
	EventEnvelope
	Payload CartUpdatedPayload `json:"payload"`
}

type CartRemovedPayload struct {
	CartID    string    `json:"cartId"`
	RemovedAt time.Time `json:"removedAt"`
}

type CartRemovedEvent struct {
	EventEnvelope
	Payload CartRemovedPayload `json:"payload"`
}

type ProductDeletedPayload struct {
	ProductID string    `json:"productId"`
	DeletedAt time.Time `json:"deletedAt"`
}

type ProductDeletedEvent struct {
	EventEnvelope
	Payload ProductDeletedPayload `json:"payload"`
}

func newEnvelope(name, schema string, meta EventMeta, seq int64, producer, eventID string, occurredAt time.Time) EventEnvelope {
	return EventEnvelope{
		EventName:     name,
		EventVersion:  1,
		EventID:       eventID,
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producer,
		PartitionKey:  meta.PartitionKey,
		Sequence:      seq,
		OccurredAt:    occurredAt,
		Schema:        schema,
	}
}
