package watcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/prettyrest/internal/logger"
	"github.com/samvad-hq/prettyrest/pkg/okx"
	"github.com/samvad-hq/prettyrest/pkg/publishers"
	"github.com/samvad-hq/prettyrest/pkg/targets"
)

// TargetProcessor polls one target and announces instruments it has not seen.
type TargetProcessor struct {
	source    InstrumentSource
	publisher EventPublisher
	log       logger.Logger
	deduper   Deduper
}

// NewTargetProcessor wires a processor. A nil deduper announces everything.
func NewTargetProcessor(src InstrumentSource, pub EventPublisher, log logger.Logger, dedup Deduper) *TargetProcessor {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &TargetProcessor{
		source:    src,
		publisher: pub,
		log:       log,
		deduper:   dedup,
	}
}

// Process fetches the target's instruments, publishes the new ones and marks
// them as seen once at least one publisher accepted the event.
func (p *TargetProcessor) Process(ctx context.Context, t targets.Target) error {
	if p == nil || p.source == nil {
		return fmt.Errorf("target processor is not initialized")
	}

	instruments, err := p.source.Instruments(ctx, t.Request())
	if err != nil {
		return fmt.Errorf("list instruments for target %s: %w", t.ID, err)
	}

	fresh := p.filterNew(t, instruments)
	p.log.InfoObj("target poll completed", "target_result", map[string]any{
		"target_id":   t.ID,
		"instruments": len(instruments),
		"new":         len(fresh),
	})
	if len(fresh) == 0 || p.publisher == nil {
		return nil
	}

	var errs []error
	for _, inst := range fresh {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		evt := publishers.NewEvent(t.ID, inst)
		delivered, err := p.publisher.Publish(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", inst.InstID, err))
		}
		if delivered == 0 {
			continue
		}
		p.markSeen(t, inst)
	}
	return errors.Join(errs...)
}

// filterNew drops instruments the deduper already knows. Lookup failures keep
// the instrument so a broken store never hides a listing.
func (p *TargetProcessor) filterNew(t targets.Target, instruments []okx.Instrument) []okx.Instrument {
	if p.deduper == nil {
		return instruments
	}

	out := make([]okx.Instrument, 0, len(instruments))
	for _, inst := range instruments {
		seen, err := p.deduper.SeenInstrument(instrumentKey(inst))
		if err != nil {
			p.log.WarnObj("dedupe lookup failed", "dedupe_error", map[string]any{
				"target_id": t.ID,
				"inst_id":   inst.InstID,
				"error":     err.Error(),
			})
		}
		if seen {
			continue
		}
		out = append(out, inst)
	}
	return out
}

func (p *TargetProcessor) markSeen(t targets.Target, inst okx.Instrument) {
	if p.deduper == nil {
		return
	}
	if err := p.deduper.MarkInstrument(instrumentKey(inst)); err != nil {
		p.log.WarnObj("dedupe mark failed", "dedupe_error", map[string]any{
			"target_id": t.ID,
			"inst_id":   inst.InstID,
			"error":     err.Error(),
		})
	}
}

func instrumentKey(inst okx.Instrument) string {
	return string(inst.InstType) + "/" + inst.InstID
}
