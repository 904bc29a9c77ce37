package watcher

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/samvad-hq/prettyrest/pkg/okx"
	"github.com/samvad-hq/prettyrest/pkg/publishers"
	"github.com/samvad-hq/prettyrest/pkg/targets"
	"golang.org/x/time/rate"
)

// fakeSource returns preset instruments per instrument type.
type fakeSource struct {
	mu       sync.Mutex
	byType   map[okx.InstrumentType][]okx.Instrument
	err      error
	requests []okx.GetInstruments
}

func (f *fakeSource) Instruments(_ context.Context, req okx.GetInstruments) ([]okx.Instrument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.byType[req.InstType], nil
}

// fakePublisher records events and fails for one instrument id.
type fakePublisher struct {
	mu      sync.Mutex
	events  []publishers.Event
	errOnID string
}

func (f *fakePublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	if evt.Instrument.InstID == f.errOnID {
		return 0, errors.New("boom")
	}
	return 1, nil
}

// fakeDeduper tracks seen keys.
type fakeDeduper struct {
	mu      sync.Mutex
	seen    map[string]bool
	failKey string
}

func (f *fakeDeduper) SeenInstrument(key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if key == f.failKey {
		return false, errors.New("lookup failed")
	}
	return f.seen[key], nil
}

func (f *fakeDeduper) MarkInstrument(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	f.seen[key] = true
	return nil
}

func spot(id string) okx.Instrument {
	return okx.Instrument{InstType: okx.InstrumentSpot, InstID: id}
}

func TestProcessPublishesFreshInstrumentsOnly(t *testing.T) {
	src := &fakeSource{byType: map[okx.InstrumentType][]okx.Instrument{
		okx.InstrumentSpot: {spot("BTC-USDT"), spot("NEW-USDT")},
	}}
	dedup := &fakeDeduper{seen: map[string]bool{"SPOT/BTC-USDT": true}}
	pub := &fakePublisher{}

	p := NewTargetProcessor(src, pub, nil, dedup)
	if err := p.Process(context.Background(), targets.Target{ID: "spot", InstType: okx.InstrumentSpot}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	evt := pub.events[0]
	if evt.TargetID != "spot" || evt.Instrument.InstID != "NEW-USDT" || evt.Type != publishers.EventInstrumentListed {
		t.Fatalf("unexpected event %+v", evt)
	}
	if !dedup.seen["SPOT/NEW-USDT"] {
		t.Fatalf("new instrument was not marked")
	}
	if len(src.requests) != 1 || src.requests[0].InstType != okx.InstrumentSpot {
		t.Fatalf("unexpected requests %#v", src.requests)
	}
}

func TestProcessDoesNotMarkUndeliveredEvents(t *testing.T) {
	src := &fakeSource{byType: map[okx.InstrumentType][]okx.Instrument{
		okx.InstrumentSpot: {spot("BAD-USDT")},
	}}
	dedup := &fakeDeduper{}
	p := NewTargetProcessor(src, &fakePublisher{errOnID: "BAD-USDT"}, nil, dedup)

	err := p.Process(context.Background(), targets.Target{ID: "spot", InstType: okx.InstrumentSpot})
	if err == nil || !strings.Contains(err.Error(), "BAD-USDT") {
		t.Fatalf("expected error mentioning BAD-USDT, got %v", err)
	}
	if dedup.seen["SPOT/BAD-USDT"] {
		t.Fatalf("undelivered instrument must stay unseen")
	}
}

func TestFilterNewKeepsInstrumentsOnLookupError(t *testing.T) {
	dedup := &fakeDeduper{
		seen:    map[string]bool{"SPOT/OLD": true},
		failKey: "SPOT/ERR",
	}
	p := NewTargetProcessor(&fakeSource{}, nil, nil, dedup)

	got := p.filterNew(targets.Target{ID: "spot"}, []okx.Instrument{spot("KEEP"), spot("OLD"), spot("ERR")})
	if len(got) != 2 || got[0].InstID != "KEEP" || got[1].InstID != "ERR" {
		t.Fatalf("unexpected filter result %#v", got)
	}
}

func TestServiceRunJoinsTargetErrors(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	svc := NewService(src, &fakePublisher{}, nil, nil, rate.NewLimiter(rate.Inf, 1))

	err := svc.Run(context.Background(), []targets.Target{
		{ID: "a", InstType: okx.InstrumentSpot},
		{ID: "b", InstType: okx.InstrumentSwap},
	})
	if err == nil {
		t.Fatalf("expected joined error")
	}
	if !strings.Contains(err.Error(), "target a") || !strings.Contains(err.Error(), "target b") {
		t.Fatalf("expected both targets in error, got %v", err)
	}
	if len(src.requests) != 2 {
		t.Fatalf("expected every target polled, got %d", len(src.requests))
	}
}

func TestServiceRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{}
	svc := NewService(src, nil, nil, nil, nil)
	if errs := svc.runAll(ctx, []targets.Target{{ID: "a"}}); len(errs) != 0 {
		t.Fatalf("expected no errors on cancelled context, got %v", errs)
	}
	if len(src.requests) != 0 {
		t.Fatalf("expected no polls after cancel")
	}
}

func TestServiceRunRejectsEmptyTargets(t *testing.T) {
	svc := NewService(&fakeSource{}, nil, nil, nil, nil)
	if err := svc.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty targets")
	}
}

func TestServiceRunReportsLimiterFailure(t *testing.T) {
	src := &fakeSource{}
	// A zero burst makes every Wait fail.
	svc := NewService(src, nil, nil, nil, rate.NewLimiter(rate.Limit(1), 0))

	err := svc.Run(context.Background(), []targets.Target{{ID: "a"}, {ID: "b"}})
	if err == nil || !strings.Contains(err.Error(), "target a") {
		t.Fatalf("expected limiter error for target a, got %v", err)
	}
	if len(src.requests) != 0 {
		t.Fatalf("expected no polls after limiter failure, got %d", len(src.requests))
	}
}
