package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/24dai03-saifchaus/algonexus/internal/config"
	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
)

func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	configFile, preset = "", ""
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&dataDir, "data", config.DefaultDataDir, "")
	cmd.Flags().StringVar(&configFile, "config", "", "")
	addRequestFlags(cmd)
	addPlayerFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(newFlagCommand(t), "")
	if err != nil {
		t.Fatal(err)
	}
	def := config.DefaultConfig()
	if cfg.Algorithm != def.Algorithm || cfg.Input != def.Input || cfg.DelayMS != def.DelayMS {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestResolveConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := "algorithm: binary_search\ninput: \"1, 2, 3\"\ntarget: \"3\"\ndelay_ms: 800\ntheme: ocean\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newFlagCommand(t, "--config", path, "--target", "2", "--delay", "4321")
	cfg, err := resolveConfig(cmd, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Algorithm != "binary_search" || cfg.Input != "1, 2, 3" || cfg.Theme != "ocean" {
		t.Errorf("config file values lost: %+v", cfg)
	}
	if cfg.Target != "2" {
		t.Errorf("flag should override target, got %q", cfg.Target)
	}
	if cfg.DelayMS != config.MaxDelayMS {
		t.Errorf("delay flag should be clamped, got %d", cfg.DelayMS)
	}
}

func TestResolveConfigPreset(t *testing.T) {
	cmd := newFlagCommand(t, "--preset", "reversed")
	cfg, err := resolveConfig(cmd, "Bubble Sort")
	if err != nil {
		t.Fatal(err)
	}
	want := config.GetPreset("bubble_sort", "reversed")
	if cfg.Input != want.Input {
		t.Errorf("preset input = %q, want %q", cfg.Input, want.Input)
	}

	cmd = newFlagCommand(t, "--preset", "nope")
	if _, err := resolveConfig(cmd, "bubble_sort"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRequestForDropsSortTarget(t *testing.T) {
	registry := experiment.NewRegistry()
	cfg := config.DefaultConfig()

	req := requestFor(registry, cfg)
	if req.Target.Valid {
		t.Errorf("sort request should carry no target, got %+v", req.Target)
	}

	cfg.Algorithm = "binary_search"
	req = requestFor(registry, cfg)
	if !req.Target.Valid || len(req.Input) == 0 {
		t.Errorf("search request = %+v", req)
	}
}
