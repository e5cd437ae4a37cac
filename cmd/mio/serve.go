package main

import (
	"os"
	"os/signal"
	"syscall"

	"mio-go/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve files over the redis protocol",
	Long: `Serve files over the redis protocol.

Commands:
  OPEN path r|a|w     open a file, returns a handle
  READ h n            read n bytes
  GETC h / GETS h     read one byte / one token
  WRITE h data        buffer data
  PUTC h c / PUTS h s write one byte / a string
  FLUSH h             flush the write buffer
  BUFFERED h          bytes waiting in the write buffer
  CLOSE h             flush and close
  HANDLES             list open handles`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options()
		if err != nil {
			return err
		}
		if opts.Logger == nil {
			if opts.Logger, err = zap.NewProduction(); err != nil {
				return err
			}
		}
		defer opts.Logger.Sync()
		svr := server.NewServer(serveAddr, opts)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sig
			_ = svr.Close()
		}()

		return svr.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:6380", "listen address")
}
