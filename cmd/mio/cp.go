package main

import (
	"fmt"
	"mio-go"

	"github.com/spf13/cobra"
)

var cpAppend bool

var cpCmd = &cobra.Command{
	Use:   "cp SRC DST",
	Short: "Copy SRC to DST byte by byte",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options()
		if err != nil {
			return err
		}
		n, err := copyFile(args[0], args[1], writeMode(cpAppend), opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "copied %d bytes\n", n)
		return nil
	},
}

func init() {
	cpCmd.Flags().BoolVarP(&cpAppend, "append", "a", false, "append to DST instead of truncating it")
}

// copyFile 通过 GetChar/PutChar 逐字节复制文件
func copyFile(src, dst string, mode mio.Mode, opts mio.Options) (int64, error) {
	in, err := mio.OpenWithOptions(src, mio.ModeRead, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := mio.OpenWithOptions(dst, mode, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", dst, err)
	}

	var n int64
	for {
		c, err := in.GetChar()
		if mio.IsEOF(err) {
			break
		}
		if err != nil {
			_ = out.Close()
			return n, fmt.Errorf("failed to read %s: %w", src, err)
		}
		if err := out.PutChar(c); err != nil {
			_ = out.Close()
			return n, fmt.Errorf("failed to write %s: %w", dst, err)
		}
		n++
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return n, nil
}
