package event

import "log"

// Publisher sends msg to the events exchange under topic.
type Publisher interface {
	Publish(topic string, msg any) error
}

// NopPublisher drops everything; used when MQ is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(topic string, msg any) error {
	return nil
}

// PublishBestEffort logs instead of returning publish failures.
func PublishBestEffort(p Publisher, topic string, msg any) {
	if p == nil {
		return
	}
	if err := p.Publish(topic, msg); err != nil {
		log.Printf("[EVENT] publish %s failed: %v", topic, err)
	}
}
