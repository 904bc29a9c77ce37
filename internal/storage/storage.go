// Package storage persists the set of instruments already announced.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store remembers which instrument keys were already announced.
type Store interface {
	Close() error
	SeenInstrument(key string) (bool, error)
	MarkInstrument(key string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	InstrumentTTL   time.Duration
	CleanupInterval time.Duration
}

const (
	defaultInstrumentTTL   = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.InstrumentTTL <= 0 {
		opts.InstrumentTTL = defaultInstrumentTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                        { return nil }
func (noopStore) SeenInstrument(string) (bool, error) { return false, nil }
func (noopStore) MarkInstrument(string) error         { return nil }
