package main

import (
	"fmt"
	"io"
	"mio-go"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat FILE...",
	Short: "Print files to stdout",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options()
		if err != nil {
			return err
		}
		for _, name := range args {
			if err := catFile(cmd.OutOrStdout(), name, opts); err != nil {
				return err
			}
		}
		return nil
	},
}

func catFile(w io.Writer, name string, opts mio.Options) (err error) {
	f, err := mio.OpenWithOptions(name, mio.ModeRead, opts)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if _, err = io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}
