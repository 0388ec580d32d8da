package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// SequenceRepository is implemented by the Postgres and Mongo stores.
type SequenceRepository interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher emits storefront events to the topic exchange. It implements
// cart.EventsPublisher and catalog.ProductEventsPublisher.
type Publisher struct {
	ch       channel
	seqRepo  SequenceRepository
	producer string

	now     func() time.Time
	eventID func() string
}

type PublisherOptions struct {
	Producer string
}

func NewPublisher(conn *amqp.Connection, seqRepo SequenceRepository, opts PublisherOptions) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return newPublisher(ch, seqRepo, opts), nil
}

func newPublisher(ch channel, seqRepo SequenceRepository, opts PublisherOptions) *Publisher {
	producer := opts.Producer
	if producer == "" {
		producer = storefrontServiceProducer
	}
	return &Publisher{
		ch:       ch,
		seqRepo:  seqRepo,
		producer: producer,
		now:      func() time.Time { return time.Now().UTC() },
		eventID:  uuid.NewString,
	}
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishCartUpdated(ctx context.Context, c *cart.Cart) error {
	meta := MetaFromContext(ctx, c.ID)
	seq, err := p.seqRepo.NextSequence(ctx, meta.PartitionKey)
	if err != nil {
		return fmt.Errorf("reserve sequence: %w", err)
	}

	occurredAt := p.now()
	payload := CartUpdatedPayload{
		CartID:     c.ID,
		Products:   make([]CartLine, 0, len(c.Products)),
		TotalPrice: c.TotalPrice,
		UpdatedAt:  c.UpdatedAt,
	}
	for _, it := range c.Products {
		payload.Products = append(payload.Products, CartLine(it))
	}

	ev := CartUpdatedEvent{
		EventEnvelope: newEnvelope(EventTypeCartUpdated, cartUpdatedSchema, meta, seq, p.producer, p.eventID(), occurredAt),
		Payload:       payload,
	}
	return p.publish(ctx, CartUpdatedRoutingKey, ev)
}

func (p *Publisher) PublishCartRemoved(ctx context.Context, cartID string) error {
	meta := MetaFromContext(ctx, cartID)
	seq, err := p.seqRepo.NextSequence(ctx, meta.PartitionKey)
	if err != nil {
		return fmt.Errorf("reserve sequence: %w", err)
	}

	occurredAt := p.now()
	ev := CartRemovedEvent{
		EventEnvelope: newEnvelope(EventTypeCartRemoved, cartRemovedSchema, meta, seq, p.producer, p.eventID(), occurredAt),
		Payload:       CartRemovedPayload{CartID: cartID, RemovedAt: occurredAt},
	}
	return p.publish(ctx, CartRemovedRoutingKey, ev)
}

func (p *Publisher) PublishProductDeleted(ctx context.Context, productID string) error {
	meta := MetaFromContext(ctx, productID)
	seq, err := p.seqRepo.NextSequence(ctx, meta.PartitionKey)
	if err != nil {
		return fmt.Errorf("reserve sequence: %w", err)
	}

	occurredAt := p.now()
	ev := ProductDeletedEvent{
		EventEnvelope: newEnvelope(EventTypeProductDeleted, productDeletedSchema, meta, seq, p.producer, p.eventID(), occurredAt),
		Payload:       ProductDeletedPayload{ProductID: productID, DeletedAt: occurredAt},
	}
	return p.publish(ctx, ProductDeletedRoutingKey, ev)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, ev any) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", routingKey, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    p.now(),
			Body:         body,
		},
	)
}
