package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange            = "ecommerce.events"
	CartUpdatedRoutingKey     = "cart.updated.v1"
	CartRemovedRoutingKey     = "cart.removed.v1"
	ProductDeletedRoutingKey  = "product.deleted.v1"
	storefrontServiceProducer = "storefront-service"
)

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
