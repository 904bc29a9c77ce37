// Package watcher polls OKX instrument listings and announces new ones.
package watcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/prettyrest/internal/logger"
	"github.com/samvad-hq/prettyrest/pkg/targets"
	"golang.org/x/time/rate"
)

// Service runs one poll pass across all targets.
type Service struct {
	processor *TargetProcessor
	limiter   *rate.Limiter
	log       logger.Logger
}

// NewService builds a watcher. A nil limiter disables pacing.
func NewService(src InstrumentSource, pub EventPublisher, log logger.Logger, dedup Deduper, limiter *rate.Limiter) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		processor: NewTargetProcessor(src, pub, log, dedup),
		limiter:   limiter,
		log:       log,
	}
}

// Run polls every target once. Per-target failures are joined; the pass
// continues past them.
func (s *Service) Run(ctx context.Context, ts []targets.Target) error {
	if s == nil || s.processor == nil {
		return fmt.Errorf("watcher service is not initialized")
	}
	if len(ts) == 0 {
		return fmt.Errorf("no targets configured for polling")
	}

	errs := s.runAll(ctx, ts)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, ts []targets.Target) []error {
	errs := make([]error, 0, len(ts))

	for _, t := range ts {
		if ctx.Err() != nil {
			break
		}
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				errs = append(errs, fmt.Errorf("rate limit wait before target %s: %w", t.ID, err))
				break
			}
		}
		if err := s.processor.Process(ctx, t); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("target poll failed", "target_error", map[string]any{
				"target_id": t.ID,
				"error":     err.Error(),
			})
		}
	}

	return errs
}
