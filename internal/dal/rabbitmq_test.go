package dal

import (
	"testing"
	"time"

	"rapid-pay-api/internal/config"
)

func TestRetryQueueArgsDeadLetterBackToResync(t *testing.T) {
	args := RetryQueueArgs(45 * time.Second)
	if args["x-message-ttl"] != int64(45000) {
		t.Fatalf("unexpected ttl %v", args["x-message-ttl"])
	}
	if args["x-dead-letter-exchange"] != EventsExchange || args["x-dead-letter-routing-key"] != RoutingRecordResync {
		t.Fatalf("retry queue must dead-letter onto %s, got %v", RoutingRecordResync, args)
	}
	if RoutingRecordResyncRetry == RoutingRecordResync {
		t.Fatal("retry key must not hit the resync queue directly")
	}
	if got := RetryQueueArgs(0)["x-message-ttl"]; got != DefaultResyncRetryDelay.Milliseconds() {
		t.Fatalf("zero delay should fall back to default, got %v", got)
	}
}

func TestResyncRetryDelayFromConfig(t *testing.T) {
	prev := config.C
	t.Cleanup(func() { config.C = prev })

	config.C.RabbitMQ.RetryDelaySeconds = 0
	if ResyncRetryDelay() != DefaultResyncRetryDelay {
		t.Fatalf("expected default delay, got %s", ResyncRetryDelay())
	}
	config.C.RabbitMQ.RetryDelaySeconds = 5
	if ResyncRetryDelay() != 5*time.Second {
		t.Fatalf("expected 5s, got %s", ResyncRetryDelay())
	}
}
