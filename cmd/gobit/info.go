package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/torrentlab/gobit/internal/bterrors"
	"github.com/torrentlab/gobit/metainfo"
)

var infoCmd = &cobra.Command{
	Use:   "info <metainfo file>",
	Short: "Print the announce URL, lengths, and piece digests of a metainfo file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := loadMetainfo(args[0])
		if err != nil {
			return err
		}
		printInfo(info)
		return nil
	},
}

func loadMetainfo(path string) (*metainfo.Info, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(bterrors.ErrIOError, err.Error())
	}
	return metainfo.Parse(buf)
}

func printInfo(info *metainfo.Info) {
	fmt.Println(info.AnnounceURL)
	fmt.Println(info.TotalLength)
	fmt.Println(hex.EncodeToString(info.InfoHash[:]))
	fmt.Println(info.PieceLength)
	for _, digest := range info.PieceHashes {
		fmt.Println(hex.EncodeToString(digest[:]))
	}
}
