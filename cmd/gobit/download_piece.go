package main

import (
	"context"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/torrentlab/gobit/internal/bterrors"
	"github.com/torrentlab/gobit/internal/progress"
	"github.com/torrentlab/gobit/internal/throttle"
	"github.com/torrentlab/gobit/piece"
)

var (
	downloadPieceOut  string
	downloadOut       string
	downloadRateLimit float64
)

var downloadPieceCmd = &cobra.Command{
	Use:   "download_piece <metainfo> <index>",
	Short: "Download a single piece and append it to an output file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if downloadPieceOut == "" {
			return errors.Wrap(bterrors.ErrIOError, "missing required -o outfile")
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrapf(bterrors.ErrInvalidMetainfo, "index %q is not an integer", args[1])
		}

		info, err := loadMetainfo(args[0])
		if err != nil {
			return err
		}
		if index < 0 || index >= info.NumPieces() {
			return errors.Wrapf(bterrors.ErrInvalidMetainfo, "index %d out of range [0,%d)", index, info.NumPieces())
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

		data, err := piece.DownloadOne(ctx, sess, index, info.PieceSize(index), info.PieceHashes[index], limiter, counters)
		if err != nil {
			log.PieceFailed(index, err)
			return err
		}
		log.PieceDownloaded(index, info.NumPieces())
		counters.PiecesDownloaded.Inc(1)
		counters.BytesDownloaded.Inc(int64(len(data)))

		if err := appendToFile(downloadPieceOut, data); err != nil {
			return err
		}

		pieces, bytesDownloaded, blocks := progress.Summary(scope)
		log.DownloadSummary(pieces, bytesDownloaded, blocks)
		return nil
	},
}

func init() {
	downloadPieceCmd.Flags().StringVarP(&downloadPieceOut, "output", "o", "", "output file path")
	downloadPieceCmd.Flags().Float64Var(&downloadRateLimit, "rate-limit", 0, "max blocks/sec (0 = unlimited)")
}

func appendToFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(bterrors.ErrIOError, err.Error())
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return errors.Wrap(bterrors.ErrIOError, err.Error())
	}
	return nil
}
