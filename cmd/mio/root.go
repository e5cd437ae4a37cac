package main

import (
	"mio-go"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bufferSize int
	lockFile   bool
	syncWrites bool
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "mio",
	Short: "Buffered file io on top of plain open/read/write/close",
	Long: `mio reads and writes files through small fixed size buffers.
Every underlying read or write moves at most --buffer-size bytes.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&bufferSize, "buffer-size", mio.DefaultBufferSize, "size of the read and write buffers")
	flags.BoolVar(&lockFile, "lock", false, "lock files opened for writing")
	flags.BoolVar(&syncWrites, "sync", false, "sync the file after every flush")
	flags.BoolVar(&debug, "debug", false, "print io trace to stderr")

	rootCmd.AddCommand(catCmd, cpCmd, tokensCmd, writeCmd, serveCmd)
}

// options 根据命令行参数构造打开文件的配置
func options() (mio.Options, error) {
	opts := mio.DefaultOptions
	opts.BufferSize = bufferSize
	opts.LockFile = lockFile
	opts.SyncWrites = syncWrites
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return opts, err
		}
		opts.Logger = logger
	}
	return opts, nil
}

func writeMode(appendMode bool) mio.Mode {
	if appendMode {
		return mio.ModeWriteAppend
	}
	return mio.ModeWriteTruncate
}
