package watcher

import (
	"context"

	"github.com/samvad-hq/prettyrest/pkg/okx"
	"github.com/samvad-hq/prettyrest/pkg/publishers"
)

// InstrumentSource lists instruments for a query. *okx.Client satisfies it.
type InstrumentSource interface {
	Instruments(ctx context.Context, req okx.GetInstruments) ([]okx.Instrument, error)
}

// EventPublisher publishes listing events downstream and reports how many
// sinks accepted the event.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers instruments that were already announced.
type Deduper interface {
	SeenInstrument(key string) (bool, error)
	MarkInstrument(key string) error
}
