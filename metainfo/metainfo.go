// Package metainfo pulls the well-known fields out of a decoded torrent
// file: the announce URL, the info hash, and the piece layout.
package metainfo

import (
	"crypto/sha1"

	"github.com/pkg/errors"

	"github.com/torrentlab/gobit/bencode"
	"github.com/torrentlab/gobit/internal/bterrors"
)

// DigestSize is the length in bytes of a SHA-1 piece or info digest.
const DigestSize = 20

// Info is a read-only projection of a single-file torrent's metainfo.
type Info struct {
	AnnounceURL string
	InfoHash    [DigestSize]byte
	TotalLength int64
	PieceLength int64
	PieceHashes [][DigestSize]byte
}

// NumPieces returns the number of pieces the torrent is split into.
func (i *Info) NumPieces() int {
	return len(i.PieceHashes)
}

// PieceSize returns the size in bytes of the piece at index, accounting
// for the final piece being shorter than PieceLength.
func (i *Info) PieceSize(index int) int64 {
	remaining := i.TotalLength - int64(index)*i.PieceLength
	if remaining < i.PieceLength {
		return remaining
	}
	return i.PieceLength
}

// Parse decodes buf as a single-file torrent metainfo and extracts
// announce_url, info_digest, total_length, piece_length and
// piece_digests. It fails with ErrInvalidMetainfo if any required field
// is missing, ill-typed, or if pieces' length is not a multiple of 20.
func Parse(buf []byte) (*Info, error) {
	root, _, err := bencode.Decode(buf, 0)
	if err != nil {
		return nil, errors.Wrap(err, "decoding metainfo")
	}
	if root.Kind != bencode.KindDict {
		return nil, errors.Wrap(bterrors.ErrInvalidMetainfo, "metainfo is not a dictionary")
	}

	announce, ok := root.Get("announce")
	if !ok || announce.Kind != bencode.KindString {
		return nil, errors.Wrap(bterrors.ErrInvalidMetainfo, "missing or ill-typed announce")
	}

	info, ok := root.Get("info")
	if !ok || info.Kind != bencode.KindDict {
		return nil, errors.Wrap(bterrors.ErrInvalidMetainfo, "missing or ill-typed info dictionary")
	}

	length, ok := info.Get("length")
	if !ok || length.Kind != bencode.KindInt || length.Int < 0 {
		return nil, errors.Wrap(bterrors.ErrInvalidMetainfo, "missing or invalid info.length")
	}

	pieceLength, ok := info.Get("piece length")
	if !ok || pieceLength.Kind != bencode.KindInt || pieceLength.Int <= 0 {
		return nil, errors.Wrap(bterrors.ErrInvalidMetainfo, "missing or invalid info.piece length")
	}

	pieces, ok := info.Get("pieces")
	if !ok || pieces.Kind != bencode.KindString {
		return nil, errors.Wrap(bterrors.ErrInvalidMetainfo, "missing or ill-typed info.pieces")
	}
	if len(pieces.Str)%DigestSize != 0 {
		return nil, errors.Wrapf(bterrors.ErrInvalidMetainfo, "pieces length %d is not a multiple of %d", len(pieces.Str), DigestSize)
	}

	hash, err := infoDigest(buf)
	if err != nil {
		return nil, err
	}

	hashes := make([][DigestSize]byte, len(pieces.Str)/DigestSize)
	for i := range hashes {
		copy(hashes[i][:], pieces.Str[i*DigestSize:(i+1)*DigestSize])
	}

	return &Info{
		AnnounceURL: string(announce.Str),
		InfoHash:    hash,
		TotalLength: length.Int,
		PieceLength: pieceLength.Int,
		PieceHashes: hashes,
	}, nil
}

// infoDigest computes SHA-1 over the raw bytes of the top-level "info"
// dictionary, located without re-encoding the decoded tree.
func infoDigest(buf []byte) ([DigestSize]byte, error) {
	var digest [DigestSize]byte
	start, err := bencode.LocateRaw(buf, 0, "info")
	if err != nil {
		return digest, errors.Wrap(bterrors.ErrInvalidMetainfo, "locating info dictionary")
	}
	_, end, err := bencode.Decode(buf, start)
	if err != nil {
		return digest, errors.Wrap(bterrors.ErrInvalidMetainfo, "re-decoding info dictionary")
	}
	digest = sha1.Sum(buf[start:end])
	return digest, nil
}
