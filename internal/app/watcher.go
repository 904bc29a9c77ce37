package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/prettyrest/internal/config"
	"github.com/samvad-hq/prettyrest/internal/logger"
	"github.com/samvad-hq/prettyrest/internal/storage"
	"github.com/samvad-hq/prettyrest/internal/watcher"
	"github.com/samvad-hq/prettyrest/pkg/httpclient"
	"github.com/samvad-hq/prettyrest/pkg/okx"
	"github.com/samvad-hq/prettyrest/pkg/publishers"
	"github.com/samvad-hq/prettyrest/pkg/targets"
	"golang.org/x/time/rate"
)

// Watcher is the listing watch runtime. It owns the poll loop and the
// resources (publishers, storage) the watcher service uses.
type Watcher struct {
	cfg          *config.Config
	targetReg    *targets.Registry
	fanout       *publishers.Fanout
	service      *watcher.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewWatcher builds the runtime from config files.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	targetReg, err := targets.LoadRegistry(cfg.TargetsFile)
	if err != nil {
		return nil, fmt.Errorf("load targets registry: %w", err)
	}
	targetIDs := make([]string, 0)
	for _, t := range targetReg.Enabled() {
		targetIDs = append(targetIDs, t.ID)
	}
	log.InfoObj("targets registry loaded", "targets_meta", map[string]any{
		"count": len(targetIDs),
		"ids":   targetIDs,
	})

	client, err := okx.NewClient(cfg.OKXBaseURL, httpclient.NewRestyClient(cfg.HTTPTimeout), okx.Options{
		Credentials: okx.Credentials{
			APIKey:     cfg.OKXAPIKey,
			SecretKey:  cfg.OKXSecretKey,
			Passphrase: cfg.OKXPassphrase,
		},
		Simulated: cfg.OKXSimulated,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("init okx client: %w", err)
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		InstrumentTTL:   cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"instrument_ttl_seconds":   int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)

	return &Watcher{
		cfg:          cfg,
		targetReg:    targetReg,
		fanout:       fanout,
		service:      watcher.NewService(client, fanout, log, store, limiter),
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

// Run polls immediately and then on every interval until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.service == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.close()

	ts := w.targetReg.Enabled()
	if len(ts) == 0 {
		w.log.WarnObj("no targets enabled; watcher idle", "targets_file", w.cfg.TargetsFile)
		<-ctx.Done()
		return ctx.Err()
	}

	w.log.InfoObj("watch loop starting", "watcher_state", map[string]any{
		"targets_count":    len(ts),
		"publishers_count": w.fanout.Size(),
		"poll_interval":    w.pollInterval.String(),
	})

	if err := w.runOnce(ctx, ts); err != nil {
		w.log.ErrorObj("initial poll failed", "error", err)
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.InfoObj("watch loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := w.runOnce(ctx, ts); err != nil {
				w.log.ErrorObj("scheduled poll failed", "error", err)
			}
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, ts []targets.Target) error {
	start := time.Now()
	if err := w.service.Run(ctx, ts); err != nil {
		return err
	}
	w.log.InfoObj("poll completed", "poll_meta", map[string]any{
		"targets_count": len(ts),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases publishers and the store, logging failures.
func (w *Watcher) close() {
	if w.fanout != nil {
		if err := w.fanout.Close(); err != nil {
			w.log.ErrorObj("publisher close failed", "error", err)
		}
	}
	if w.store != nil {
		if err := w.store.Close(); err != nil {
			w.log.ErrorObj("storage close failed", "error", err)
		}
	}
}
