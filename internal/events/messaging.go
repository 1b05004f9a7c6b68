package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange        = "bitecraft.events"
	OrderPlacedRoutingKey = "order.placed.v1"
	producerName          = "bitecraft"
)

// Dial connects to RabbitMQ.
func Dial(url string) (*amqp.Connection, error) {
	return amqp.Dial(url)
}

func declareEventsExchange(ch channel) error {
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
