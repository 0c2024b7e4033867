package peer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/torrentlab/gobit/internal/bterrors"
)

// messageID identifies the payload of a length-prefixed peer message.
type messageID byte

const (
	msgChoke         messageID = 0
	msgUnchoke       messageID = 1
	msgInterested    messageID = 2
	msgNotInterested messageID = 3
	msgHave          messageID = 4
	msgBitfield      messageID = 5
	msgRequest       messageID = 6
	msgPiece         messageID = 7
)

// maxMessageLength bounds the declared length of an incoming frame. A
// piece message carries at most a 16 KiB block plus its 9-byte id and
// index/begin header; the extra 13 bytes also allow for the 4-byte
// length prefix, so the bound on the declared length is 4 bytes looser
// than that. Anything larger indicates a desynchronised stream rather
// than a legitimate message.
const maxMessageLength = 16384 + 13

// frame is a decoded length-prefixed peer message: id is absent (and
// payload empty) for a zero-length keep-alive.
type frame struct {
	id        messageID
	payload   []byte
	keepAlive bool
}

// readFrame reads one <length:u32><id:u8><payload> frame, looping on
// short reads until the declared length is satisfied.
func readFrame(r io.Reader) (frame, error) {
	var lengthBuf [4]byte
	if _, err := io.ReadFull(r, lengthBuf[:]); err != nil {
		if err == io.EOF {
			return frame{}, errors.Wrap(io.EOF, "peer closed the connection")
		}
		return frame{}, errors.Wrap(bterrors.ErrUnexpectedEOF, "reading message length prefix")
	}
	length := binary.BigEndian.Uint32(lengthBuf[:])
	if length == 0 {
		return frame{keepAlive: true}, nil
	}
	if length > maxMessageLength {
		return frame{}, errors.Wrapf(bterrors.ErrProtocolViolation, "message length %d exceeds limit", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return frame{}, errors.Wrap(bterrors.ErrUnexpectedEOF, "reading message body")
	}

	return frame{id: messageID(body[0]), payload: body[1:]}, nil
}

// writeFrame writes a <length:u32><id:u8><payload> frame.
func writeFrame(w io.Writer, id messageID, payload []byte) error {
	buf := make([]byte, 4+1+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], uint32(1+len(payload)))
	buf[4] = byte(id)
	copy(buf[5:], payload)
	return writeFull(w, buf)
}

// encodeRequest builds the 12-byte payload of a request message: piece
// index, block offset within the piece, and block length, all
// big-endian u32.
func encodeRequest(index, begin, length int) []byte {
	buf := make([]byte, 12)
	binary.BigEndian.PutUint32(buf[0:4], uint32(index))
	binary.BigEndian.PutUint32(buf[4:8], uint32(begin))
	binary.BigEndian.PutUint32(buf[8:12], uint32(length))
	return buf
}

// decodePiece splits a piece message's payload into its index, block
// offset, and block bytes.
func decodePiece(payload []byte) (index, begin int, block []byte, err error) {
	if len(payload) < 8 {
		return 0, 0, nil, errors.Wrapf(bterrors.ErrProtocolViolation, "piece payload too short: %d bytes", len(payload))
	}
	index = int(binary.BigEndian.Uint32(payload[0:4]))
	begin = int(binary.BigEndian.Uint32(payload[4:8]))
	block = payload[8:]
	return index, begin, block, nil
}

// decodeHave extracts the piece index announced by a have message.
func decodeHave(payload []byte) (int, error) {
	if len(payload) != 4 {
		return 0, errors.Wrapf(bterrors.ErrProtocolViolation, "have payload must be 4 bytes, got %d", len(payload))
	}
	return int(binary.BigEndian.Uint32(payload)), nil
}
