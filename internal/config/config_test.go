package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadValidConfigResolvesRelativeOutputDir(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	cfgYAML := `
output_dir: out
pids:
  "1s0m1234": "1S0M1234A9"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	wantOut := filepath.Join(tmp, "out")
	if cfg.OutputDir != wantOut {
		t.Fatalf("OutputDir = %q, want %q", cfg.OutputDir, wantOut)
	}
	if _, err := os.Stat(wantOut); err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
	pid, ok := cfg.PIDFor("1s0m1234", "")
	if !ok || pid != "1S0M1234A9" {
		t.Fatalf("PIDFor(1s0m1234) = %q, %v, want %q, true", pid, ok, "1S0M1234A9")
	}
}

func TestLoadRejectsMalformedPID(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	cfgYAML := `
output_dir: out
pids:
  "book1": "tooshort"
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Fatalf("expected error for malformed pid")
	}
}

func TestLoadDefaultsEmptyOutputDir(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("pids: {}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir == "" {
		t.Fatalf("expected a default output dir to be resolved")
	}
}
