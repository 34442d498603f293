package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/gregko/libmobi/pkg/mobibook"
	"github.com/spf13/cobra"
	"github.com/wcharczuk/go-chart/v2"
)

var chartPath string

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the PalmDB header, record directory, and PalmDOC/MOBI header summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		book, err := mobibook.Open(path)
		if err != nil {
			slog.Error("open failed", "file", path, "err", err)
			return err
		}

		h := book.DB.Header
		fmt.Printf("PalmDB name:    %s\n", bytes.TrimRight(h.Name[:], "\x00"))
		fmt.Printf("Type/Creator:   %s/%s\n", h.Type[:], h.Creator[:])
		fmt.Printf("Record count:   %d\n", h.RecordCount)
		fmt.Println()
		fmt.Println("Records:")
		for i := 0; i < book.DB.NumRecords(); i++ {
			data, err := book.DB.RecordData(i)
			if err != nil {
				return err
			}
			fmt.Printf("  [%3d] offset=%-8d size=%-6d attrs=%#02x\n", i, book.DB.Records[i].Offset, len(data), book.DB.Records[i].Attributes)
		}
		fmt.Println()
		fmt.Printf("Compression:      %d\n", book.PalmDOC.Compression)
		fmt.Printf("Encryption type:  %d\n", book.PalmDOC.EncryptionType)
		if book.Mobi != nil {
			fmt.Printf("MOBI header len:  %d\n", book.Mobi.HeaderLength)
			fmt.Printf("DRM offset/count: %d/%d\n", book.Mobi.DRMOffset, book.Mobi.DRMCount)
		} else {
			fmt.Println("MOBI header:      absent (plain PalmDOC)")
		}

		if chartPath != "" {
			if err := writeRecordSizeChart(book, chartPath); err != nil {
				slog.Error("chart render failed", "err", err)
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVar(&chartPath, "chart", "", "write a PNG bar chart of record sizes to this path")
}

func writeRecordSizeChart(book *mobibook.Book, path string) error {
	bars := make([]chart.Value, 0, book.DB.NumRecords())
	for i := 0; i < book.DB.NumRecords(); i++ {
		data, err := book.DB.RecordData(i)
		if err != nil {
			return err
		}
		bars = append(bars, chart.Value{Value: float64(len(data)), Label: fmt.Sprintf("%d", i)})
	}

	graph := chart.BarChart{
		Title:    "Record sizes",
		Height:   256,
		BarWidth: 10,
		Bars:     bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
