package main

import (
	"fmt"
	"mio-go"
	"strings"

	"github.com/spf13/cobra"
)

var writeAppend bool

var writeCmd = &cobra.Command{
	Use:   "write FILE TEXT...",
	Short: "Write TEXT to FILE, one argument per line",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options()
		if err != nil {
			return err
		}
		return writeLines(args[0], args[1:], writeMode(writeAppend), opts)
	},
}

func init() {
	writeCmd.Flags().BoolVarP(&writeAppend, "append", "a", false, "append to FILE instead of truncating it")
}

func writeLines(name string, lines []string, mode mio.Mode, opts mio.Options) error {
	f, err := mio.OpenWithOptions(name, mode, opts)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	data := strings.Join(lines, "\n") + "\n"
	if n, err := f.PutString(data); err != nil || n != len(data) {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: wrote %d of %d bytes: %v", name, n, len(data), err)
	}
	return f.Close()
}
