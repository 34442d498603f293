package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	logFormat  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "mobitool",
	Short: "Inspect, validate, and decrypt Mobipocket/KF7/KF8 e-book containers",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		opts := &slog.HandlerOptions{Level: level}
		var handler slog.Handler
		if logFormat == "json" {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		} else {
			handler = slog.NewTextHandler(os.Stderr, opts)
		}
		// Every run carries a correlation id so a batch of runs (e.g. a
		// shell loop calling `mobitool dump` once per file) can be grepped
		// apart in a shared log stream.
		slog.SetDefault(slog.New(handler).With("run_id", uuid.NewString()))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to mobitool's YAML config file")
}

func defaultConfigPath() string {
	const configFileName = "mobitool.yaml"
	exePath, err := os.Executable()
	if err == nil {
		exeConfig := exePath + ".yaml"
		if fileExists(exeConfig) {
			return exeConfig
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return configFileName
	}
	return cwd + string(os.PathSeparator) + configFileName
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
