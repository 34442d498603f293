package main

import (
	"fmt"
	"os"

	"github.com/gregko/libmobi/pkg/mobidrm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var pidcheckCmd = &cobra.Command{
	Use:   "pidcheck [pid]",
	Short: "Validate a PID's checksum",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pid string
		if len(args) == 1 {
			pid = args[0]
		} else {
			fmt.Fprint(os.Stderr, "PID: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("read pid: %w", err)
			}
			pid = string(raw)
		}

		if err := mobidrm.ValidatePID([]byte(pid)); err != nil {
			fmt.Printf("INVALID: %v\n", err)
			return err
		}
		fmt.Println("VALID")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pidcheckCmd)
}
