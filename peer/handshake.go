package peer

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/torrentlab/gobit/internal/bterrors"
)

// Protocol is the fixed protocol string of the 68-byte handshake.
const Protocol = "BitTorrent protocol"

// HandshakeSize is the fixed length of a handshake frame: 1 + 19 + 8 +
// 20 + 20.
const HandshakeSize = 1 + len(Protocol) + 8 + 20 + 20

// buildHandshake lays out the fixed handshake frame: protocol length,
// protocol string, 8 reserved zero bytes, the 20-byte info hash, and the
// 20-byte peer id.
func buildHandshake(infoHash, id [20]byte) []byte {
	buf := make([]byte, HandshakeSize)
	buf[0] = byte(len(Protocol))
	copy(buf[1:], Protocol)
	// buf[1+len(Protocol) : 1+len(Protocol)+8] stays zero: no extensions.
	copy(buf[1+len(Protocol)+8:], infoHash[:])
	copy(buf[1+len(Protocol)+8+20:], id[:])
	return buf
}

// performHandshake writes our handshake, reads the peer's, and
// validates the protocol string and info hash. It returns the remote
// peer's 20-byte identifier.
func performHandshake(conn io.ReadWriter, infoHash, id [20]byte) ([20]byte, error) {
	var remoteID [20]byte

	out := buildHandshake(infoHash, id)
	if err := writeFull(conn, out); err != nil {
		return remoteID, errors.Wrap(bterrors.ErrHandshakeFailed, err.Error())
	}

	in := make([]byte, HandshakeSize)
	if _, err := io.ReadFull(conn, in); err != nil {
		return remoteID, errors.Wrap(bterrors.ErrHandshakeFailed, "short read during handshake")
	}

	protocolEnd := 1 + len(Protocol)
	if !bytes.Equal(in[:protocolEnd], out[:protocolEnd]) {
		return remoteID, errors.Wrapf(bterrors.ErrHandshakeFailed, "unexpected protocol string %q", in[1:protocolEnd])
	}

	hashStart := protocolEnd + 8
	hashEnd := hashStart + 20
	if !bytes.Equal(in[hashStart:hashEnd], infoHash[:]) {
		return remoteID, errors.Wrap(bterrors.ErrHandshakeFailed, "info hash mismatch")
	}

	copy(remoteID[:], in[hashEnd:hashEnd+20])
	return remoteID, nil
}

// writeFull writes buf in full, treating any short write as a fatal
// transport error.
func writeFull(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return errors.Errorf("short write: wrote %d of %d bytes", n, len(buf))
	}
	return nil
}
