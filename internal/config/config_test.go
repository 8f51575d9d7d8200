package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/schelling/internal/schelling"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultSimulationConfig() {
		t.Errorf("embedded config %+v differs from hard-coded %+v", cfg, DefaultSimulationConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("threshold: 0.4\nlocations: 900\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Threshold != 0.4 || cfg.Locations != 900 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Distribution != DefaultSimulationConfig().Distribution {
		t.Errorf("distribution should keep defaults, got %+v", cfg.Distribution)
	}
	if cfg.TickRate != 10 {
		t.Errorf("TickRate = %d, want default 10", cfg.TickRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimulationConfig)
		want   error
	}{
		{"zero locations", func(c *SimulationConfig) { c.Locations = 0 }, schelling.ErrInvalidLocations},
		{"negative share", func(c *SimulationConfig) { c.Distribution.TypeB = -0.2 }, schelling.ErrInvalidDistribution},
		{"threshold too high", func(c *SimulationConfig) { c.Threshold = 1.01 }, schelling.ErrInvalidThreshold},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSimulationConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}

	cfg := DefaultSimulationConfig()
	cfg.MaxTicks = -1
	if cfg.Validate() == nil {
		t.Error("negative max_ticks should be rejected")
	}
}

func TestToParams(t *testing.T) {
	cfg := DefaultSimulationConfig()
	cfg.Seed = 99
	p := cfg.ToParams()

	want := schelling.Params{
		Locations:    65536,
		Distribution: schelling.Distribution{A: 0.25, B: 0.25, Empty: 0.5},
		Threshold:    0.7,
		Seed:         99,
	}
	if p != want {
		t.Errorf("ToParams() = %+v, want %+v", p, want)
	}
}

func TestTolerancePresets(t *testing.T) {
	tests := []struct {
		preset TolerancePreset
		want   float64
	}{
		{ToleranceTolerant, 0.3},
		{ToleranceModerate, 0.5},
		{ToleranceStrict, 0.7},
		{ToleranceFixed, 0.42},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSimulationConfig()
			cfg.Threshold = 0.42
			ApplyTolerancePreset(&cfg, tc.preset)
			if cfg.Threshold != tc.want {
				t.Errorf("threshold = %v, want %v", cfg.Threshold, tc.want)
			}
		})
	}
}

func TestParseTolerance(t *testing.T) {
	if p, err := ParseTolerance("strict"); err != nil || p != ToleranceStrict {
		t.Errorf("ParseTolerance(strict) = %q, %v", p, err)
	}
	if _, err := ParseTolerance("paranoid"); err == nil {
		t.Error("unknown preset should be rejected")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("locations: 100\nthreshold: 0.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Locations != 100 || cfg.Threshold != 0.2 {
		t.Errorf("custom config not loaded: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("threshold: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML should be an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("threshold: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, schelling.ErrInvalidThreshold) {
		t.Errorf("out-of-range threshold: got %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded default.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != DefaultSimulationConfig() {
		t.Errorf("expected embedded default, got %+v", cfg)
	}

	// Local configs directory.
	writeConfig(t, filepath.Join(work, "configs"), "locations: 400\n")
	if cfg, _ = Load(""); cfg.Locations != 400 {
		t.Errorf("local config ignored: %+v", cfg)
	}

	// User config wins over local.
	writeConfig(t, filepath.Join(home, ".schelling", "configs"), "locations: 900\n")
	if cfg, _ = Load(""); cfg.Locations != 900 {
		t.Errorf("user config ignored: %+v", cfg)
	}

	// An invalid user config falls through to the local one.
	writeConfig(t, filepath.Join(home, ".schelling", "configs"), "locations: -5\n")
	if cfg, _ = Load(""); cfg.Locations != 400 {
		t.Errorf("invalid user config should be skipped: %+v", cfg)
	}
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
