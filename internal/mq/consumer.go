package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"

	"rapid-pay-api/internal/dal"
	"rapid-pay-api/internal/dto"
)

const maxRetry = 3

// RecordSyncer re-mirrors one order into the record table.
type RecordSyncer interface {
	SyncRecord(ctx context.Context, orderID uint64) error
}

// ResyncConsumer drains record_resync. A failed sync is parked on the retry
// queue with an incremented retry count until maxRetry is reached; the queue
// TTL brings it back after the retry delay.
type ResyncConsumer struct {
	syncer RecordSyncer
	pub    *Publisher
}

func NewResyncConsumer(syncer RecordSyncer, pub *Publisher) *ResyncConsumer {
	return &ResyncConsumer{syncer: syncer, pub: pub}
}

// Start blocks until ctx is done or the delivery channel closes.
func (c *ResyncConsumer) Start(ctx context.Context, ch *amqp.Channel) error {
	if ch == nil {
		log.Println("[MQ] RabbitMQ channel not initialized, resync consumer off")
		return nil
	}
	msgs, err := ch.Consume(dal.QueueRecordResync, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s failed: %w", dal.QueueRecordResync, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.deliver(ctx, d)
		}
	}
}

func (c *ResyncConsumer) deliver(ctx context.Context, d amqp.Delivery) {
	if err := c.Handle(ctx, d.Body); err != nil {
		log.Printf("[MQ-RESYNC] %v", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

// Handle processes one message body. It returns an error only for messages
// that should be dead-lettered; retries are re-published here.
func (c *ResyncConsumer) Handle(ctx context.Context, body []byte) error {
	var msg dto.RecordResyncMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("resync unmarshal err: %w", err)
	}

	err := c.syncer.SyncRecord(ctx, msg.OrderID)
	if err == nil {
		log.Printf("[MQ-RESYNC] order %d resynced (attempt %d)", msg.OrderID, msg.RetryCount+1)
		return nil
	}

	if msg.RetryCount >= maxRetry {
		return fmt.Errorf("max retry reached for order %d: %w", msg.OrderID, err)
	}
	msg.RetryCount++
	msg.Reason = err.Error()
	if perr := c.pub.Publish(dal.RoutingRecordResyncRetry, msg); perr != nil {
		return fmt.Errorf("requeue order %d failed: %w", msg.OrderID, perr)
	}
	log.Printf("[MQ-RESYNC] retrying order %d (attempt %d): %v", msg.OrderID, msg.RetryCount, err)
	return nil
}
