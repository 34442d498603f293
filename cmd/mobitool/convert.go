package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gregko/libmobi/pkg/mobibook"
	"github.com/spf13/cobra"
)

var (
	convertPID string
	convertOut string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Decrypt and convert a book to EPUB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		book, err := mobibook.Open(path)
		if err != nil {
			slog.Error("open failed", "file", path, "err", err)
			return err
		}
		defer book.Close()

		pid, err := resolvePID(book, convertPID)
		if err != nil {
			return err
		}
		if err := book.SetKey(pidBytesOrNil(pid)); err != nil {
			slog.Error("key recovery failed", "file", path, "err", err)
			return err
		}

		out := convertOut
		if out == "" {
			out = path + ".epub"
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()

		if err := book.WriteEPUB(f); err != nil {
			slog.Error("epub write failed", "file", path, "err", err)
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertPID, "pid", "", "10-character PID (falls back to the configured PID for this book)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output EPUB path (default: <file>.epub)")
}
