package stream

import "context"

// Subscriber yields an ordered, at-least-once sequence of frames from the
// upstream feed. The Ingestion Loop is its sole consumer.
type Subscriber interface {
	// Next blocks until the next frame arrives, ctx is canceled, or the
	// connection fails. A non-nil error is fatal for the current
	// subscription (spec §7 "Store-transient"-equivalent for the stream
	// itself) — the caller is expected to exit and rely on a supervisor to
	// restart.
	Next(ctx context.Context) (Frame, error)

	// Close releases the underlying connection.
	Close() error
}
