package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/torrentlab/gobit/internal/bterrors"
	"github.com/torrentlab/gobit/internal/gobitlog"
	"github.com/torrentlab/gobit/internal/peerid"
	"github.com/torrentlab/gobit/metainfo"
	"github.com/torrentlab/gobit/peer"
	"github.com/torrentlab/gobit/tracker"
)

// connectUnchoked announces to info's tracker, dials the first peer in
// the reply, and drives the session through to Unchoked, ready for
// piece downloads.
func connectUnchoked(ctx context.Context, info *metainfo.Info, log *gobitlog.Logger) (*peer.Session, error) {
	clientID := peerid.New()

	addrs, err := tracker.Announce(ctx, info.AnnounceURL, info.InfoHash, clientID, info.TotalLength)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, errors.Wrap(bterrors.ErrTrackerError, "tracker returned no peers")
	}
	log.TrackerAnnounce(info.AnnounceURL, len(addrs))

	address := addrs[0].String()
	log.Dialing(address)
	sess, err := peer.Dial(ctx, address, info.InfoHash, clientID)
	if err != nil {
		log.HandshakeFailed(address, err)
		return nil, err
	}
	log.HandshakeOK(address, sess.RemoteID)

	if err := sess.AwaitBitfield(ctx); err != nil {
		sess.Close()
		return nil, err
	}
	if err := sess.SendInterested(); err != nil {
		sess.Close()
		return nil, err
	}
	if err := sess.AwaitUnchoke(ctx); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}
