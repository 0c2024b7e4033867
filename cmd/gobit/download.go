package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/torrentlab/gobit/internal/bterrors"
	"github.com/torrentlab/gobit/internal/progress"
	"github.com/torrentlab/gobit/internal/throttle"
	"github.com/torrentlab/gobit/piece"
)

var downloadCmd = &cobra.Command{
	Use:   "download <metainfo>",
	Short: "Download every piece the connected peer has, in ascending index order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if downloadOut == "" {
			return errors.Wrap(bterrors.ErrIOError, "missing required -o outfile")
		}

		info, err := loadMetainfo(args[0])
		if err != nil {
			return err
		}

		log := newLogger()
		defer log.Sync()

		ctx := context.Background()
		sess, err := connectUnchoked(ctx, info, log)
		if err != nil {
			return err
		}
		defer sess.Close()

		limiter := throttle.New(downloadRateLimit)
		counters, scope := progress.NewCLICounters()
		indices := sess.Bitfield.AvailableIndices(info.NumPieces())

		err = piece.DownloadAll(ctx, sess, info, indices, counters, log, limiter, func(index int, data []byte) error {
			return appendToFile(downloadOut, data)
		})
		pieces, bytesDownloaded, blocks := progress.Summary(scope)
		log.DownloadSummary(pieces, bytesDownloaded, blocks)
		return err
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOut, "output", "o", "", "output file path")
	downloadCmd.Flags().Float64Var(&downloadRateLimit, "rate-limit", 0, "max blocks/sec (0 = unlimited)")
}
