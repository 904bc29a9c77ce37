package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/prettyrest/pkg/okx"
)

// EventInstrumentListed is emitted the first time an instrument is observed.
const EventInstrumentListed = "instrument.listed"

// Event represents the payload published downstream.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	TargetID   string         `json:"target_id"`
	Instrument okx.Instrument `json:"instrument"`
	ObservedAt time.Time      `json:"observed_at"`
}

// NewEvent constructs a listing Event for the given target + instrument.
func NewEvent(targetID string, inst okx.Instrument) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       EventInstrumentListed,
		TargetID:   targetID,
		Instrument: inst,
		ObservedAt: time.Now().UTC(),
	}
}

// attributes are attached to broker messages for subscription filtering.
// Empty values are omitted.
func (e Event) attributes() map[string]string {
	attrs := make(map[string]string, 3)
	for k, v := range map[string]string{
		"event_type": e.Type,
		"target_id":  e.TargetID,
		"inst_type":  string(e.Instrument.InstType),
	} {
		if v != "" {
			attrs[k] = v
		}
	}
	return attrs
}
