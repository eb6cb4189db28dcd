package dal

import (
	"fmt"
	"log"
	"strings"
	"time"

	"rapid-pay-api/internal/config"

	"github.com/streadway/amqp"
)

const (
	EventsExchange = "rapid_pay_events"

	QueueStatusChanged = "order_status_changed"
	QueueRecordResync  = "record_resync"
	// Failed resyncs park here until the TTL dead-letters them back onto
	// record.resync.
	QueueRecordResyncRetry = "record_resync_retry"

	RoutingStatusChanged     = "order.status_changed"
	RoutingRecordResync      = "record.resync"
	RoutingRecordResyncRetry = "record.resync.retry"

	DefaultResyncRetryDelay = 30 * time.Second
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

// InitRabbitMQ connects and declares the gateway topology. An empty URL leaves
// MQ disabled; publishers then fall back to no-ops.
func InitRabbitMQ() error {
	url := strings.TrimSpace(config.C.RabbitMQ.URL)
	if url == "" {
		log.Printf("[RabbitMQ] url empty, events disabled")
		return nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel failed: %w", err)
	}
	if pc := config.C.RabbitMQ.PrefetchCount; pc > 0 {
		if err := ch.Qos(pc, 0, false); err != nil {
			log.Printf("[RabbitMQ] set qos failed: %v", err)
		}
	}
	if err := DeclareTopology(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	RabbitConn = conn
	RabbitCh = ch
	log.Printf("[RabbitMQ] connected, exchange=%s", EventsExchange)
	return nil
}

// ResyncRetryDelay is the configured park time for a failed resync.
func ResyncRetryDelay() time.Duration {
	if sec := config.C.RabbitMQ.RetryDelaySeconds; sec > 0 {
		return time.Duration(sec) * time.Second
	}
	return DefaultResyncRetryDelay
}

// RetryQueueArgs expires parked messages after delay and routes them back to
// the resync queue through the events exchange.
func RetryQueueArgs(delay time.Duration) amqp.Table {
	if delay <= 0 {
		delay = DefaultResyncRetryDelay
	}
	return amqp.Table{
		"x-message-ttl":             delay.Milliseconds(),
		"x-dead-letter-exchange":    EventsExchange,
		"x-dead-letter-routing-key": RoutingRecordResync,
	}
}

// DeclareTopology declares the events exchange, the two bound queues and the
// delayed retry queue.
func DeclareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(EventsExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare failed: %w", err)
	}
	bindings := map[string]string{
		QueueStatusChanged: RoutingStatusChanged,
		QueueRecordResync:  RoutingRecordResync,
	}
	for queue, key := range bindings {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s failed: %w", queue, err)
		}
		if err := ch.QueueBind(queue, key, EventsExchange, false, nil); err != nil {
			return fmt.Errorf("queue bind %s failed: %w", queue, err)
		}
	}
	if _, err := ch.QueueDeclare(QueueRecordResyncRetry, true, false, false, false, RetryQueueArgs(ResyncRetryDelay())); err != nil {
		return fmt.Errorf("queue declare %s failed: %w", QueueRecordResyncRetry, err)
	}
	if err := ch.QueueBind(QueueRecordResyncRetry, RoutingRecordResyncRetry, EventsExchange, false, nil); err != nil {
		return fmt.Errorf("queue bind %s failed: %w", QueueRecordResyncRetry, err)
	}
	return nil
}

func CloseRabbitMQ() {
	if RabbitCh != nil {
		_ = RabbitCh.Close()
	}
	if RabbitConn != nil {
		_ = RabbitConn.Close()
	}
}
