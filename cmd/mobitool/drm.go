package main

import (
	"fmt"
	"log/slog"

	"github.com/gregko/libmobi/pkg/mobibook"
	"github.com/spf13/cobra"
)

var drmPID string

var drmCmd = &cobra.Command{
	Use:   "drm <file>",
	Short: "Recover and print a book's DRM key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		book, err := mobibook.Open(path)
		if err != nil {
			slog.Error("open failed", "file", path, "err", err)
			return err
		}

		pid, err := resolvePID(book, drmPID)
		if err != nil {
			return err
		}

		if err := book.SetKey(pidBytesOrNil(pid)); err != nil {
			slog.Error("key recovery failed", "file", path, "err", err)
			fmt.Printf("FAILED: %v\n", err)
			return err
		}
		fmt.Printf("key: %x\n", book.Key.Bytes())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(drmCmd)
	drmCmd.Flags().StringVar(&drmPID, "pid", "", "10-character PID (falls back to the configured PID for this book)")
}

// resolvePID returns the PID to use for a book: the --pid flag if given,
// else the registry entry for the book's UID/ASIN in the loaded config.
func resolvePID(book *mobibook.Book, flagPID string) (string, error) {
	if flagPID != "" {
		return flagPID, nil
	}
	cfg, err := loadConfigOptional(configPath)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	if cfg == nil {
		return "", nil
	}
	asin, _ := book.EXTH.ASIN()
	uidHex := fmt.Sprintf("%x", book.DB.Header.UniqueIDSeed)
	pid, _ := cfg.PIDFor(uidHex, asin)
	return pid, nil
}

func pidBytesOrNil(pid string) []byte {
	if pid == "" {
		return nil
	}
	return []byte(pid)
}
