package peer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHandshakeLayout(t *testing.T) {
	var infoHash, id [20]byte
	copy(infoHash[:], bytes.Repeat([]byte{0xAA}, 20))
	copy(id[:], bytes.Repeat([]byte{0xBB}, 20))

	buf := buildHandshake(infoHash, id)
	require.Len(t, buf, HandshakeSize)
	assert.Equal(t, byte(19), buf[0])
	assert.Equal(t, Protocol, string(buf[1:20]))
	assert.Equal(t, make([]byte, 8), buf[20:28])
	assert.Equal(t, infoHash[:], buf[28:48])
	assert.Equal(t, id[:], buf[48:68])
}

// loopback is an in-memory io.ReadWriter pairing a reader and writer
// so performHandshake's write-then-read can be exercised without a
// real socket.
type loopback struct {
	toPeer   *bytes.Buffer
	fromPeer *bytes.Buffer
}

func (l *loopback) Write(p []byte) (int, error) {
	return l.toPeer.Write(p)
}

func (l *loopback) Read(p []byte) (int, error) {
	return l.fromPeer.Read(p)
}

func TestPerformHandshakeAcceptsMatchingReply(t *testing.T) {
	var infoHash, ourID, theirID [20]byte
	copy(infoHash[:], bytes.Repeat([]byte{0x01}, 20))
	copy(theirID[:], bytes.Repeat([]byte{0x02}, 20))

	reply := buildHandshake(infoHash, theirID)
	conn := &loopback{toPeer: &bytes.Buffer{}, fromPeer: bytes.NewBuffer(reply)}

	remoteID, err := performHandshake(conn, infoHash, ourID)
	require.NoError(t, err)
	assert.Equal(t, theirID, remoteID)
}

func TestPerformHandshakeRejectsHashMismatch(t *testing.T) {
	var infoHash, otherHash, ourID, theirID [20]byte
	copy(infoHash[:], bytes.Repeat([]byte{0x01}, 20))
	copy(otherHash[:], bytes.Repeat([]byte{0x09}, 20))

	reply := buildHandshake(otherHash, theirID)
	conn := &loopback{toPeer: &bytes.Buffer{}, fromPeer: bytes.NewBuffer(reply)}

	_, err := performHandshake(conn, infoHash, ourID)
	assert.Error(t, err)
}

func TestPerformHandshakeRejectsShortReply(t *testing.T) {
	var infoHash, ourID [20]byte
	conn := &loopback{toPeer: &bytes.Buffer{}, fromPeer: bytes.NewBuffer([]byte{1, 2, 3})}

	_, err := performHandshake(conn, infoHash, ourID)
	assert.Error(t, err)
}

func TestPerformHandshakeRejectsWrongProtocolString(t *testing.T) {
	var infoHash, ourID, theirID [20]byte
	bogus := buildHandshake(infoHash, theirID)
	bogus[1] = 'x'
	conn := &loopback{toPeer: &bytes.Buffer{}, fromPeer: bytes.NewBuffer(bogus)}

	_, err := performHandshake(conn, infoHash, ourID)
	assert.Error(t, err)
}
