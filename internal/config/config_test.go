package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Segments != 100 {
		t.Errorf("expected 100 segments, got %d", cfg.Segments)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Delta <= 0 {
		t.Error("delta should be positive")
	}
	if err := cfg.Params().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scallop.yaml")
	body := "segments: 40\ndt: 0.005\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Segments != 40 {
		t.Errorf("expected 40 segments, got %d", cfg.Segments)
	}
	if cfg.Dt != 0.005 {
		t.Errorf("expected dt 0.005, got %f", cfg.Dt)
	}
	// Untouched fields keep defaults.
	if cfg.Tau != DefaultTau {
		t.Errorf("expected default tau, got %f", cfg.Tau)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scallop.yaml")

	cfg := DefaultConfig()
	cfg.ThetaA = 0.3
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ThetaA != 0.3 {
		t.Errorf("expected theta_a 0.3, got %f", loaded.ThetaA)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("reference")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Segments != 100 {
		t.Errorf("expected 100 segments, got %d", cfg.Segments)
	}
	if err := cfg.Params().Validate(); err != nil {
		t.Errorf("reference preset should validate: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}

	found := false
	for _, n := range names {
		if n == "reference" {
			found = true
		}
	}
	if !found {
		t.Error("expected reference preset in listing")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for name, cfg := range Presets {
		if err := cfg.Params().Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
