// Package events publishes staynest domain events. Publication is best effort:
// a failed publish is logged and never fails the request that caused it.
package events

import (
	"context"
	"time"

	"staynest/pkg/kafka"
	"staynest/pkg/logger"
)

const (
	TypeUserRegistered      = "user.registered"
	TypePlaceCreated        = "place.created"
	TypePlaceUpdated        = "place.updated"
	TypePlaceUpdateRejected = "place.update_rejected"
	TypeBookingCreated      = "booking.created"

	SchemaVersion = "1"
	Source        = "staynest-api"
)

type Event struct {
	Type      string         `json:"type"`
	Key       string         `json:"key"`
	ActorID   string         `json:"actor_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

type messageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer messageProducer
	timeout  time.Duration
	log      *logger.Logger
}

func NewKafkaPublisher(producer messageProducer, timeout time.Duration, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		timeout:  timeout,
		log:      log,
	}
}

// Publish detaches from the request context so a cancelled request does not
// abort the write, but bounds it with the publisher's own timeout.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	msg, err := kafka.NewMessage().
		WithKey(event.Key).
		WithValue(event).
		WithEventType(event.Type).
		WithCorrelationID(logger.RequestID(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		Build()
	if err != nil {
		p.log.Error("Failed to encode event", "event_type", event.Type, "key", event.Key, "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.producer.Publish(pubCtx, msg); err != nil {
		p.log.Warn("Failed to publish event",
			"event_type", event.Type,
			"key", event.Key,
			"error", err,
		)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) {}

func (Noop) Close() error { return nil }
