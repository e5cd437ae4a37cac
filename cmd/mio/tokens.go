package main

import (
	"fmt"
	"io"
	"mio-go"

	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the whitespace separated tokens of FILE, one per line",
	Long: `Print the whitespace separated tokens of FILE, one per line.
Tokens longer than buffer-size minus one are split.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options()
		if err != nil {
			return err
		}
		n, err := printTokens(cmd.OutOrStdout(), args[0], opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d tokens\n", n)
		return nil
	},
}

func printTokens(w io.Writer, name string, opts mio.Options) (int, error) {
	f, err := mio.OpenWithOptions(name, mio.ModeRead, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	var count int
	for {
		token, err := f.GetToken()
		if mio.IsEOF(err) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("failed to read %s: %w", name, err)
		}
		count++
		fmt.Fprintln(w, token)
	}
}
