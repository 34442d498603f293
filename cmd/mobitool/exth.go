package main

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/gregko/libmobi/pkg/mobibook"
	"github.com/gregko/libmobi/pkg/mobiheader"
	"github.com/spf13/cobra"
)

var exthTagNames = map[uint32]string{
	mobiheader.EXTHAuthor:       "author",
	mobiheader.EXTHPublisher:    "publisher",
	mobiheader.EXTHDescription:  "description",
	mobiheader.EXTHISBN:         "isbn",
	mobiheader.EXTHUpdatedTitle: "updated_title",
	mobiheader.EXTHASIN:         "asin",
}

var exthCmd = &cobra.Command{
	Use:   "exth <file>",
	Short: "Print every EXTH metadata tag in a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		book, err := mobibook.Open(path)
		if err != nil {
			slog.Error("open failed", "file", path, "err", err)
			return err
		}
		if book.EXTH == nil {
			fmt.Println("no EXTH block present")
			return nil
		}
		for _, rec := range book.EXTH.Records {
			label := exthTagNames[rec.Type]
			if label == "" {
				label = "unknown"
			}
			if utf8.Valid(rec.Data) {
				fmt.Printf("[%4d] %-14s %s\n", rec.Type, label, string(rec.Data))
			} else {
				fmt.Printf("[%4d] %-14s % x\n", rec.Type, label, rec.Data)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exthCmd)
}
