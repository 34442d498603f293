// Package config loads mobitool's YAML configuration: the default output
// directory for converted books and a PID registry keyed by book UID, so
// repeat invocations don't require re-typing a PID.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const pidLength = 10

// Config is mobitool's on-disk configuration.
type Config struct {
	OutputDir string            `yaml:"output_dir"`
	PIDs      map[string]string `yaml:"pids"`
}

// Load reads and validates the YAML config at path. OutputDir is created if
// it does not already exist; every configured PID must be exactly 10 ASCII
// characters, but its checksum is not validated here — a config may
// legitimately hold a PID for a book that has not been opened yet.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.resolvePaths(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate makes sure OutputDir exists as a directory (creating it if
// needed; write permission is not checked) and that every registered PID
// is syntactically well-formed.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = "."
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("config.output_dir %q: %w", c.OutputDir, err)
	}

	for uid, pid := range c.PIDs {
		if len(pid) != pidLength {
			return fmt.Errorf("config.pids[%q]: pid %q must be %d characters, got %d", uid, pid, pidLength, len(pid))
		}
		for _, r := range pid {
			if r > 0x7F {
				return fmt.Errorf("config.pids[%q]: pid %q must be ASCII", uid, pid)
			}
		}
	}
	return nil
}

// PIDFor looks up a previously-known-good PID for a book, keyed by the
// PalmDB UniqueIDSeed (hex, lowercase) or an EXTH ASIN tag. Returns ("",
// false) when neither key is registered.
func (c *Config) PIDFor(uidHex, asin string) (string, bool) {
	if pid, ok := c.PIDs[uidHex]; ok {
		return pid, true
	}
	if asin != "" {
		if pid, ok := c.PIDs[asin]; ok {
			return pid, true
		}
	}
	return "", false
}

func (c *Config) resolvePaths(configPath string) {
	configDir := filepath.Dir(configPath)
	c.OutputDir = resolvePath(configDir, c.OutputDir)
}

func resolvePath(baseDir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Clean(filepath.Join(baseDir, trimmed))
}
