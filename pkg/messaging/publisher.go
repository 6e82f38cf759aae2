package messaging

import (
	"context"
)

// Subjects of the catalog domain events. Kafka publishers use them as topic names.
const (
	ProductCreatedSubject = "catalog.product.created"
	ProductUpdatedSubject = "catalog.product.updated"
	ProductDeletedSubject = "catalog.product.deleted"

	// SubjectWildcard matches every catalog subject. JetStream streams bind to it.
	SubjectWildcard = "catalog.>"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event. It is used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}
