package events

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// EventEnvelope represents the common envelope for all events.
type EventEnvelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CausationID   string    `json:"causationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
	Payload       T         `json:"payload"`
}

// EnvelopeMetadata carries correlation/causation context for emitted events.
type EnvelopeMetadata struct {
	CorrelationID string
	CausationID   string
}

type metadataKey struct{}

func ContextWithMetadata(ctx context.Context, md EnvelopeMetadata) context.Context {
	return context.WithValue(ctx, metadataKey{}, md)
}

func MetadataFromContext(ctx context.Context) EnvelopeMetadata {
	if md, ok := ctx.Value(metadataKey{}).(EnvelopeMetadata); ok {
		return md
	}
	return EnvelopeMetadata{}
}

var ErrInvalidEnvelope = errors.New("invalid event envelope")

// Validate checks the envelope before it leaves the process. Every
// published event must carry its identity, a producer and a partition key.
func (e EventEnvelope[T]) Validate(name string, version int) error {
	switch {
	case e.EventName != name:
		return fmt.Errorf("%w: eventName %q, want %q", ErrInvalidEnvelope, e.EventName, name)
	case e.EventVersion != version:
		return fmt.Errorf("%w: eventVersion %d, want %d", ErrInvalidEnvelope, e.EventVersion, version)
	case e.EventID == "":
		return fmt.Errorf("%w: missing eventId", ErrInvalidEnvelope)
	case e.PartitionKey == "":
		return fmt.Errorf("%w: missing partitionKey", ErrInvalidEnvelope)
	case e.Producer == "":
		return fmt.Errorf("%w: missing producer", ErrInvalidEnvelope)
	case e.OccurredAt.IsZero():
		return fmt.Errorf("%w: missing occurredAt", ErrInvalidEnvelope)
	}
	return nil
}
