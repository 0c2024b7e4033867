package tracker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentEncodeAllEscapesEveryByte(t *testing.T) {
	var data []byte
	for i := 0; i < 256; i++ {
		data = append(data, byte(i))
	}
	var b strings.Builder
	percentEncodeAll(&b, data)
	encoded := b.String()
	require.Len(t, encoded, 256*3)
	for i := 0; i < 256; i++ {
		assert.Equal(t, "%", encoded[i*3:i*3+1])
	}
	// Spot check: 0x00 -> %00, 0xff -> %ff, 'A' (0x41) -> %41 (lowercase,
	// even though 'A' itself is an unreserved byte under RFC 3986).
	assert.Equal(t, "%00", encoded[0:3])
	assert.Equal(t, "%ff", encoded[255*3:])
	assert.Equal(t, "%41", encoded[0x41*3:0x41*3+3])
}

func TestAnnounceParsesCompactPeers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "info_hash=")
		assert.Contains(t, r.URL.RawQuery, "compact=1")
		// peers: two addresses, 1.2.3.4:5 and 5.6.7.8:9.
		peers := []byte{1, 2, 3, 4, 0, 5, 5, 6, 7, 8, 0, 9}
		w.Write([]byte("d8:intervali900e5:peers12:" + string(peers) + "e"))
	}))
	defer server.Close()

	var infoHash, peerID [20]byte
	addrs, err := Announce(context.Background(), server.URL, infoHash, peerID, 100)
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	assert.Equal(t, "1.2.3.4:5", addrs[0].String())
	assert.Equal(t, "5.6.7.8:9", addrs[1].String())
}

func TestAnnounceRejectsMissingPeers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("d8:intervali900ee"))
	}))
	defer server.Close()

	var infoHash, peerID [20]byte
	_, err := Announce(context.Background(), server.URL, infoHash, peerID, 0)
	assert.Error(t, err)
}

func TestAnnounceRejectsFailureReason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("d14:failure reason10:no such dbe"))
	}))
	defer server.Close()

	var infoHash, peerID [20]byte
	_, err := Announce(context.Background(), server.URL, infoHash, peerID, 0)
	assert.Error(t, err)
}
