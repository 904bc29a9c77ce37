// Package targets loads the instrument filters the watcher polls.
package targets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samvad-hq/prettyrest/pkg/okx"
	"gopkg.in/yaml.v3"
)

// Target is one GetInstruments query to poll.
type Target struct {
	ID         string             `json:"id" yaml:"id"`
	InstType   okx.InstrumentType `json:"inst_type" yaml:"inst_type"`
	Uly        string             `json:"uly" yaml:"uly"`
	InstFamily string             `json:"inst_family" yaml:"inst_family"`
	Enabled    *bool              `json:"enabled" yaml:"enabled"`
}

// Request builds the OKX request for the target.
func (t Target) Request() okx.GetInstruments {
	return okx.GetInstruments{
		InstType:   t.InstType,
		Uly:        t.Uly,
		InstFamily: t.InstFamily,
	}
}

// EnabledValue returns the enabled flag defaulting to true.
func (t Target) EnabledValue() bool {
	if t.Enabled == nil {
		return true
	}
	return *t.Enabled
}

type fileRegistry struct {
	Targets []Target `json:"targets" yaml:"targets"`
}

// Registry holds the loaded targets.
type Registry struct {
	mu      sync.RWMutex
	targets []Target
	idx     map[string]Target
}

// NewRegistry validates targets and builds a registry from them.
func NewRegistry(targets []Target) (*Registry, error) {
	reg := &Registry{
		targets: make([]Target, 0, len(targets)),
		idx:     make(map[string]Target, len(targets)),
	}
	for i := range targets {
		t := sanitizeTarget(targets[i])
		if err := validateTarget(t); err != nil {
			return nil, fmt.Errorf("targets[%d]: %w", i, err)
		}
		if _, exists := reg.idx[t.ID]; exists {
			return nil, fmt.Errorf("duplicate target id %q", t.ID)
		}
		reg.targets = append(reg.targets, t)
		reg.idx[t.ID] = t
	}
	return reg, nil
}

// LoadRegistry loads targets from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("targets file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open targets file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	fr, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fr.Targets) == 0 {
		return nil, errors.New("targets file contains no targets entries")
	}
	return NewRegistry(fr.Targets)
}

// ByID returns the target with id, if loaded.
func (r *Registry) ByID(id string) (Target, bool) {
	if r == nil {
		return Target{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Target{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.idx[id]
	return t, ok
}

// All returns a copy of every loaded target.
func (r *Registry) All() []Target {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// Enabled returns targets whose enabled flag is unset or true.
func (r *Registry) Enabled() []Target {
	all := r.All()
	out := make([]Target, 0, len(all))
	for _, t := range all {
		if t.EnabledValue() {
			out = append(out, t)
		}
	}
	return out
}

type unmarshalFn func([]byte, any) error

func parseRegistry(data []byte, ext string) (fileRegistry, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var fr fileRegistry
		if err := d.fn(data, &fr); err == nil {
			return fr, nil
		}
	}

	return fileRegistry{}, errors.New("targets file format not recognized (expected YAML or JSON)")
}

func sanitizeTarget(t Target) Target {
	t.ID = strings.TrimSpace(t.ID)
	t.Uly = strings.TrimSpace(t.Uly)
	t.InstFamily = strings.TrimSpace(t.InstFamily)
	if typ, ok := okx.ParseInstrumentType(string(t.InstType)); ok {
		t.InstType = typ
	}
	if t.ID == "" && t.InstType != "" {
		t.ID = strings.ToLower(string(t.InstType))
		if t.InstFamily != "" {
			t.ID += "-" + strings.ToLower(t.InstFamily)
		}
	}
	return t
}

func validateTarget(t Target) error {
	if t.ID == "" {
		return errors.New("id is required")
	}
	if _, ok := okx.ParseInstrumentType(string(t.InstType)); !ok {
		return fmt.Errorf("inst_type %q is not a known instrument type for target %q", t.InstType, t.ID)
	}
	if t.InstType == okx.InstrumentAny {
		return fmt.Errorf("inst_type ANY cannot be polled for target %q", t.ID)
	}
	if t.InstType == okx.InstrumentOption && t.Uly == "" && t.InstFamily == "" {
		return fmt.Errorf("uly or inst_family is required for OPTION target %q", t.ID)
	}
	return nil
}
