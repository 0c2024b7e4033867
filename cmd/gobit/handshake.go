package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrentlab/gobit/internal/peerid"
	"github.com/torrentlab/gobit/peer"
)

var handshakeCmd = &cobra.Command{
	Use:   "handshake <metainfo file> <ip:port>",
	Short: "Connect to a peer, perform the handshake, and print its id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := loadMetainfo(args[0])
		if err != nil {
			return err
		}

		log := newLogger()
		defer log.Sync()

		log.Dialing(args[1])
		sess, err := peer.Dial(context.Background(), args[1], info.InfoHash, peerid.New())
		if err != nil {
			log.HandshakeFailed(args[1], err)
			return err
		}
		defer sess.Close()
		log.HandshakeOK(args[1], sess.RemoteID)

		fmt.Println(hex.EncodeToString(sess.RemoteID[:]))
		return nil
	},
}
