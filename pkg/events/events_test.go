package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"staynest/pkg/kafka"
	"staynest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProducer struct {
	publishFunc func(ctx context.Context, msg kafka.Message) error
	published   []kafka.Message
	closed      bool
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, msg)
	}
	return nil
}

func (m *mockProducer) Close() error {
	m.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &mockProducer{}
	pub := NewKafkaPublisher(producer, time.Second, logger.Discard())

	ctx := logger.WithRequestID(context.Background(), "req-1")
	pub.Publish(ctx, Event{
		Type:    TypePlaceUpdateRejected,
		Key:     "place-1",
		ActorID: "user-2",
	})

	require.Len(t, producer.published, 1)
	msg := producer.published[0]
	assert.Equal(t, "place-1", msg.Key)
	assert.Equal(t, TypePlaceUpdateRejected, msg.GetEventType())
	assert.Equal(t, "req-1", msg.GetCorrelationID())
	assert.Equal(t, Source, msg.Headers[kafka.HeaderSource])

	var decoded Event
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, "user-2", decoded.ActorID)
	assert.False(t, decoded.Timestamp.IsZero())
}

func TestKafkaPublisher_SurvivesCancelledRequest(t *testing.T) {
	var deadlineSet bool
	producer := &mockProducer{
		publishFunc: func(ctx context.Context, _ kafka.Message) error {
			_, deadlineSet = ctx.Deadline()
			return ctx.Err()
		},
	}
	pub := NewKafkaPublisher(producer, time.Second, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pub.Publish(ctx, Event{Type: TypeBookingCreated, Key: "b-1"})

	require.Len(t, producer.published, 1)
	assert.True(t, deadlineSet)
}

func TestKafkaPublisher_ErrorIsSwallowed(t *testing.T) {
	producer := &mockProducer{
		publishFunc: func(context.Context, kafka.Message) error { return errors.New("broker down") },
	}
	pub := NewKafkaPublisher(producer, time.Second, logger.Discard())

	assert.NotPanics(t, func() {
		pub.Publish(context.Background(), Event{Type: TypePlaceCreated, Key: "p"})
	})
}

func TestKafkaPublisher_Close(t *testing.T) {
	producer := &mockProducer{}
	pub := NewKafkaPublisher(producer, time.Second, logger.Discard())

	require.NoError(t, pub.Close())
	assert.True(t, producer.closed)
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	p.Publish(context.Background(), Event{Type: TypePlaceCreated})
	assert.NoError(t, p.Close())
}
