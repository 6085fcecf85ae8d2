package usecase

import "context"

// EventSink is the side channel that legacy flows push notifications into
// (Telegram bot today, NATS for the new admin bot). Payload keys keep the
// first-seen order so rendered messages stay stable.
type EventSink interface {
	Notify(ctx context.Context, event string, payload []Field) error
}

// Field is one "Key: value" line of an event payload.
type Field struct {
	Key   string
	Value string
}

// MultiSink fans an event out to every sink, keeping the first error.
type MultiSink []EventSink

func (m MultiSink) Notify(ctx context.Context, event string, payload []Field) error {
	var firstErr error
	for _, sink := range m {
		if err := sink.Notify(ctx, event, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NopSink drops events; used when no side channel is configured.
type NopSink struct{}

func (NopSink) Notify(ctx context.Context, event string, payload []Field) error { return nil }
