// Package piece tiles a piece into fixed-size blocks, drives a single
// peer.Session through the request/response cycle for each block in
// sequence, and verifies the reassembled piece against its expected
// SHA-1 digest.
package piece

import (
	"context"
	"crypto/sha1"

	"github.com/pkg/errors"

	"github.com/torrentlab/gobit/internal/bterrors"
	"github.com/torrentlab/gobit/internal/gobitlog"
	"github.com/torrentlab/gobit/internal/progress"
	"github.com/torrentlab/gobit/internal/throttle"
	"github.com/torrentlab/gobit/metainfo"
	"github.com/torrentlab/gobit/peer"
)

// BlockSize is the maximum number of bytes requested in a single
// block: 16 KiB, the de facto standard block size on the wire.
const BlockSize = 1 << 14

// block describes one block-sized slice of a piece.
type block struct {
	offset int
	length int
}

// tile splits a piece of the given size into BlockSize blocks, the
// final block truncated to whatever remains.
func tile(size int64) []block {
	var blocks []block
	var offset int64
	for offset < size {
		length := int64(BlockSize)
		if offset+length > size {
			length = size - offset
		}
		blocks = append(blocks, block{offset: int(offset), length: int(length)})
		offset += length
	}
	return blocks
}

// DownloadOne requests every block of piece index from sess, one block
// in flight at a time, reassembles them in order, and verifies the
// result against expectedDigest before returning it.
func DownloadOne(ctx context.Context, sess *peer.Session, index int, size int64, expectedDigest [20]byte, limiter *throttle.Limiter, counters *progress.Counters) ([]byte, error) {
	buf := make([]byte, size)

	for _, b := range tile(size) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(bterrors.ErrTransportError, err.Error())
		}
		if err := sess.RequestBlock(index, b.offset, b.length); err != nil {
			return nil, err
		}
		counters.BlocksRequested.Inc(1)
		begin, data, err := sess.ReadPiece(ctx, index)
		if err != nil {
			return nil, err
		}
		if begin != b.offset {
			return nil, errors.Wrapf(bterrors.ErrProtocolViolation, "expected block at offset %d, got %d", b.offset, begin)
		}
		if len(data) != b.length {
			return nil, errors.Wrapf(bterrors.ErrProtocolViolation, "expected block of length %d, got %d", b.length, len(data))
		}
		copy(buf[b.offset:], data)
	}

	digest := sha1.Sum(buf)
	if digest != expectedDigest {
		return nil, errors.Wrapf(bterrors.ErrPieceDigestMismatch, "piece %d: expected %x, got %x", index, expectedDigest, digest)
	}
	return buf, nil
}

// Sink receives each piece as it is downloaded and verified, in
// whatever order DownloadAll produces them.
type Sink func(index int, data []byte) error

// DownloadAll downloads each piece in indices, in the order given,
// sequentially from the single session sess, and reports progress
// through counters. It stops at the first error: a single dropped
// peer connection ends the whole download, since this client does not
// retry against other peers. Callers are expected to pass indices in
// ascending order; DownloadAll itself does not sort.
func DownloadAll(ctx context.Context, sess *peer.Session, info *metainfo.Info, indices []int, counters *progress.Counters, log *gobitlog.Logger, limiter *throttle.Limiter, sink Sink) error {
	for _, index := range indices {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(bterrors.ErrTransportError, err.Error())
		}

		size := info.PieceSize(index)
		data, err := DownloadOne(ctx, sess, index, size, info.PieceHashes[index], limiter, counters)
		if err != nil {
			log.PieceFailed(index, err)
			return errors.Wrapf(err, "downloading piece %d", index)
		}

		if err := sink(index, data); err != nil {
			return errors.Wrap(bterrors.ErrIOError, err.Error())
		}

		counters.PiecesDownloaded.Inc(1)
		counters.BytesDownloaded.Inc(int64(len(data)))
		log.PieceDownloaded(index, info.NumPieces())
	}
	return nil
}
