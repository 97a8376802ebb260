package sinks

import "context"

// Sink delivers submission receipts to a downstream destination (log, HTTP
// webhook, SQS, etc). Close releases any transport resources the sink holds;
// sinks without such resources return nil.
type Sink interface {
	ID() string
	Type() string
	Deliver(ctx context.Context, evt Event) error
	Close() error
}
