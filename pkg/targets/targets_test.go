package targets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samvad-hq/prettyrest/pkg/okx"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write targets file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeFile(t, "targets.yaml", `
targets:
  - id: spot
    inst_type: spot
  - inst_type: OPTION
    inst_family: BTC-USD
  - id: swap
    inst_type: SWAP
    enabled: false
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(reg.All()))
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled targets, got %#v", enabled)
	}

	spot, ok := reg.ByID("spot")
	if !ok || spot.InstType != okx.InstrumentSpot {
		t.Fatalf("unexpected spot target %#v", spot)
	}
	opt, ok := reg.ByID("option-btc-usd")
	if !ok {
		t.Fatalf("expected derived id option-btc-usd, got %#v", reg.All())
	}
	if req := opt.Request(); req.InstType != okx.InstrumentOption || req.InstFamily != "BTC-USD" {
		t.Fatalf("unexpected request %#v", req)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "targets.json", `{"targets":[{"id":"futures","inst_type":"FUTURES","uly":"BTC-USD"}]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if got := reg.Enabled(); len(got) != 1 || got[0].Uly != "BTC-USD" {
		t.Fatalf("unexpected targets %#v", got)
	}
}

func TestLoadRegistryValidation(t *testing.T) {
	cases := map[string]string{
		"duplicate": `
targets:
  - id: a
    inst_type: SPOT
  - id: a
    inst_type: SWAP
`,
		"unknown type": `
targets:
  - id: a
    inst_type: BOND
`,
		"option without family": `
targets:
  - id: a
    inst_type: OPTION
`,
		"empty": `targets: []`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadRegistry(writeFile(t, "targets.yaml", content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
