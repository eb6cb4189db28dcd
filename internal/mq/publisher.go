package mq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"rapid-pay-api/internal/dal"
)

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher writes JSON messages to the gateway events exchange.
type Publisher struct {
	ch       Channel
	exchange string
}

func NewPublisher(ch Channel) *Publisher {
	return &Publisher{ch: ch, exchange: dal.EventsExchange}
}

// Publish is a no-op when no channel is configured.
func (p *Publisher) Publish(topic string, msg any) error {
	if p == nil || p.ch == nil {
		return nil
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", topic, err)
	}
	err = p.ch.Publish(p.exchange, topic, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         b,
	})
	if err != nil {
		return fmt.Errorf("publish %s failed: %w", topic, err)
	}
	return nil
}
