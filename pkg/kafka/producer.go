// Package kafka publishes catalog events to Kafka with franz-go.
package kafka

import (
	"context"
	"fmt"

	"github.com/abgdnv/gocommerce-catalog/pkg/config"
	"github.com/abgdnv/gocommerce-catalog/pkg/messaging"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// keyedEvent is implemented by events that want a stable partition key.
type keyedEvent interface {
	Key() string
}

// producer is the part of *kgo.Client the publisher needs.
type producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
}

type KafkaPublisher struct {
	cl     producer
	closer func()
}

// NewKafkaPublisher connects to the brokers and pings them before returning.
func NewKafkaPublisher(ctx context.Context, cfg config.KafkaConfig) (*KafkaPublisher, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.DialTimeout(cfg.Timeout),
		kgo.WithHooks(kotel.NewTracer()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, cfg.Timeout)
	defer pingCancel()
	if err := cl.Ping(pingCtx); err != nil {
		cl.Close()
		return nil, fmt.Errorf("ping kafka: %w", err)
	}

	return &KafkaPublisher{cl: cl, closer: cl.Close}, nil
}

// Publish produces the event to the topic named after its subject and waits for the broker ack.
func (p *KafkaPublisher) Publish(ctx context.Context, event messaging.Event) error {
	ctx, span := tracer.Start(ctx, "KafkaPublisher.Publish",
		trace.WithAttributes(
			attribute.String("topic", event.Subject()),
		),
	)
	defer span.End()

	data, err := event.Payload()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build payload")
		return fmt.Errorf("failed to get event payload: %w", err)
	}
	record := &kgo.Record{
		Topic: event.Subject(),
		Value: data,
	}
	if keyed, ok := event.(keyedEvent); ok {
		record.Key = []byte(keyed.Key())
	}

	var msgErr error
	doneChan := make(chan struct{})
	p.cl.Produce(ctx, record, func(_ *kgo.Record, err error) {
		msgErr = err
		close(doneChan)
	})

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-doneChan:
		err = msgErr
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to produce message")
		return fmt.Errorf("failed to produce %s: %w", event.Subject(), err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Close closes the underlying client.
func (p *KafkaPublisher) Close() {
	if p.closer != nil {
		p.closer()
	}
}
