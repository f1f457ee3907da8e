package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "bubble_sort" {
		t.Errorf("expected algorithm bubble_sort, got %s", cfg.Algorithm)
	}
	if cfg.DelayMS != 1500 {
		t.Errorf("expected delay 1500ms, got %d", cfg.DelayMS)
	}
	if len(cfg.Dataset()) != 7 {
		t.Errorf("expected 7 default values, got %v", cfg.Dataset())
	}
	if tg := cfg.SearchTarget(); !tg.Valid || tg.Value != 22 {
		t.Errorf("expected target 22, got %v", tg)
	}
	if cfg.Server.MaxDatasetSize != DefaultMaxDatasetSize {
		t.Errorf("expected dataset limit %d, got %d", DefaultMaxDatasetSize, cfg.Server.MaxDatasetSize)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	cfg := DefaultConfig()
	cfg.Algorithm = "binary_search"
	cfg.Input = "5, 3, 1"
	cfg.Target = "99"
	cfg.DelayMS = 700
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Algorithm != "binary_search" || loaded.Input != "5, 3, 1" || loaded.Target != "99" {
		t.Errorf("unexpected config: %+v", loaded)
	}
	if loaded.DelayMS != 700 {
		t.Errorf("expected delay 700, got %d", loaded.DelayMS)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("algorithm: binary_search\ndelay_ms: 99999\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Language != DefaultLanguage {
		t.Errorf("expected default language, got %q", cfg.Language)
	}
	if cfg.DelayMS != MaxDelayMS {
		t.Errorf("expected delay clamped to %d, got %d", MaxDelayMS, cfg.DelayMS)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("algorithm: [unterminated"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestClampDelay(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 100}, {100, 100}, {149, 100}, {150, 200}, {1500, 1500}, {3960, 4000}, {9000, 4000},
	}
	for _, tt := range tests {
		if got := ClampDelay(tt.in); got != tt.want {
			t.Errorf("ClampDelay(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("binary_search", "missing")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Target != "99" {
		t.Errorf("expected target 99, got %s", cfg.Target)
	}

	cfg.Target = "1"
	if GetPreset("binary_search", "missing").Target != "99" {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("bubble_sort", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "classic") != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("bubble_sort")
	if len(presets) == 0 {
		t.Fatal("expected presets for bubble_sort")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}
