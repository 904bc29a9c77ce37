package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/prettyrest/internal/config"
	"github.com/samvad-hq/prettyrest/pkg/publishers"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestWatcherPublishesNewListingsOnce(t *testing.T) {
	okxSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v5/public/instruments" || r.URL.Query().Get("instType") != "SPOT" {
			http.Error(w, "unexpected "+r.URL.String(), http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"code":"0","msg":"","data":[{"instType":"SPOT","instId":"BTC-USDT","state":"live"}]}`))
	}))
	defer okxSrv.Close()

	var (
		mu     sync.Mutex
		events []publishers.Event
	)
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			t.Errorf("decode event: %v", err)
		}
		mu.Lock()
		events = append(events, evt)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer sink.Close()

	dir := t.TempDir()
	cfg := &config.Config{
		OKXBaseURL:             okxSrv.URL + "/api/v5/",
		HTTPTimeout:            2 * time.Second,
		TargetsFile:            writeFile(t, dir, "targets.yaml", "targets:\n  - id: spot\n    inst_type: SPOT\n"),
		PublishersFile:         writeFile(t, dir, "publishers.yaml", "publishers:\n  - id: sink\n    type: http\n    http:\n      url: "+sink.URL+"\n"),
		PollInterval:           time.Hour,
		RateLimitPerSecond:     100,
		RateLimitBurst:         1,
		StorageType:            "bbolt",
		BBoltPath:              filepath.Join(dir, "listings.db"),
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}

	w, err := NewWatcher(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.close()

	ts := w.targetReg.Enabled()
	for i := 0; i < 2; i++ {
		if err := w.runOnce(context.Background(), ts); err != nil {
			t.Fatalf("runOnce #%d: %v", i, err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("expected a single announcement, got %d", len(events))
	}
	if events[0].TargetID != "spot" || events[0].Instrument.InstID != "BTC-USDT" {
		t.Fatalf("unexpected event %+v", events[0])
	}
}

func TestNewWatcherRequiresConfig(t *testing.T) {
	if _, err := NewWatcher(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
