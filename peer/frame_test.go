package peer

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, msgRequest, encodeRequest(3, 16384, 16384)))

	f, err := readFrame(&buf)
	require.NoError(t, err)
	assert.False(t, f.keepAlive)
	assert.Equal(t, msgRequest, f.id)

	index, begin, length := decodeRequestForTest(f.payload)
	assert.Equal(t, 3, index)
	assert.Equal(t, 16384, begin)
	assert.Equal(t, 16384, length)
}

// decodeRequestForTest mirrors encodeRequest's layout; production code
// never needs to decode a request it sent itself, so this helper lives
// only in the test.
func decodeRequestForTest(payload []byte) (index, begin, length int) {
	return int(be32(payload[0:4])), int(be32(payload[4:8])), int(be32(payload[8:12]))
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func TestReadFrameKeepAlive(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0})
	f, err := readFrame(buf)
	require.NoError(t, err)
	assert.True(t, f.keepAlive)
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	lenBuf := []byte{0xff, 0xff, 0xff, 0xff}
	buf := bytes.NewBuffer(lenBuf)
	_, err := readFrame(buf)
	assert.Error(t, err)
}

func TestReadFrameRejectsShortBody(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 5, 1, 2})
	_, err := readFrame(buf)
	assert.Error(t, err)
}

func TestReadFrameReportsCleanEOFBeforeAnyFrame(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	_, err := readFrame(buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecodePieceSplitsIndexBeginBlock(t *testing.T) {
	payload := encodeRequest(7, 32768, 0)[:8]
	payload = append(payload, []byte("blockdata")...)

	index, begin, block, err := decodePiece(payload)
	require.NoError(t, err)
	assert.Equal(t, 7, index)
	assert.Equal(t, 32768, begin)
	assert.Equal(t, []byte("blockdata"), block)
}

func TestDecodePieceRejectsShortPayload(t *testing.T) {
	_, _, _, err := decodePiece([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestDecodeHave(t *testing.T) {
	index, err := decodeHave(encodeRequest(0, 0, 0)[0:4])
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	_, err = decodeHave([]byte{1, 2, 3})
	assert.Error(t, err)
}
