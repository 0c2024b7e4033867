// Package main wires the gobit CLI: decode, info, peers, handshake,
// download_piece, and download, as a cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/torrentlab/gobit/internal/gobitlog"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "gobit",
	Short:         "A minimal, single-peer BitTorrent client.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(decodeCmd, infoCmd, peersCmd, handshakeCmd, downloadPieceCmd, downloadCmd)
}

func newLogger() *gobitlog.Logger {
	log, err := gobitlog.New(verbose)
	if err != nil {
		return gobitlog.NewNop()
	}
	return log
}

// fail prints a diagnostic to stderr and exits 1. No error is
// recovered inside the core packages; the dispatcher is the sole place
// that turns an error into a process exit code.
func fail(err error) {
	fmt.Fprintln(os.Stderr, "gobit:", err)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fail(err)
	}
}
