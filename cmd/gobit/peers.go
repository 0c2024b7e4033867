package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrentlab/gobit/internal/peerid"
	"github.com/torrentlab/gobit/tracker"
)

var peersCmd = &cobra.Command{
	Use:   "peers <metainfo file>",
	Short: "Announce to the tracker and print the peer list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := loadMetainfo(args[0])
		if err != nil {
			return err
		}

		log := newLogger()
		defer log.Sync()

		addrs, err := tracker.Announce(context.Background(), info.AnnounceURL, info.InfoHash, peerid.New(), info.TotalLength)
		if err != nil {
			return err
		}
		log.TrackerAnnounce(info.AnnounceURL, len(addrs))

		for _, addr := range addrs {
			fmt.Println(addr.String())
		}
		return nil
	},
}
