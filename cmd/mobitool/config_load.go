package main

import (
	"errors"
	"os"

	"github.com/gregko/libmobi/internal/config"
)

// loadConfigOptional loads the mobitool config at path, returning a nil
// Config (not an error) when the file simply does not exist yet — most
// subcommands work fine with no PID registry or a default output dir.
func loadConfigOptional(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return config.Load(path)
}
