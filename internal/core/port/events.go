package port

import "context"

// EventConsumer delivers bucket notifications from a broker to a MessageService
type EventConsumer interface {
	// EnsureStream provisions the broker side of the subscription if it is missing
	EnsureStream(ctx context.Context) error
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// MessageService handles one raw broker message.
// A returned error asks the consumer for a later redelivery.
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}
