// Package tracker announces a torrent to its HTTP tracker and parses the
// compact peer list out of the reply.
package tracker

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/torrentlab/gobit/bencode"
	"github.com/torrentlab/gobit/internal/bterrors"
)

// Port is the fixed client listening port advertised in announce
// requests; this client never actually listens, so the value is
// nominal.
const Port = 6881

// addrSize is the size in bytes of one compact peer entry: 4-byte IPv4
// address followed by a 2-byte big-endian port.
const addrSize = 6

// Address is a peer address as returned by the tracker's compact peer
// list.
type Address struct {
	IP   net.IP
	Port uint16
}

// String renders the address as "A.B.C.D:port".
func (a Address) String() string {
	return net.JoinHostPort(a.IP.String(), strconv.Itoa(int(a.Port)))
}

// Announce builds the announce URL, issues the GET, decodes the
// bencoded reply, and returns the peer list. left is the number of
// bytes still to be downloaded.
func Announce(ctx context.Context, announceURL string, infoHash, peerID [20]byte, left int64) ([]Address, error) {
	url := buildAnnounceURL(announceURL, infoHash, peerID, left)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(bterrors.ErrTrackerError, err.Error())
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(bterrors.ErrTrackerError, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(bterrors.ErrTrackerError, "tracker returned status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(bterrors.ErrTrackerError, "reading tracker response")
	}

	return parseAnnounceResponse(body)
}

// buildAnnounceURL builds <announce>?info_hash=<E>&peer_id=<E>&port=6881&
// uploaded=0&downloaded=0&left=<N>&compact=1 where <E> percent-encodes
// every byte as a lowercase, zero-padded two-digit hex pair. This is
// deliberately not net/url.Values.Encode: that function's QueryEscape
// leaves unreserved bytes (letters, digits, a handful of punctuation
// bytes) of the binary info hash and peer id unescaped, which would
// violate this tracker protocol's requirement that every byte of a
// binary field becomes a literal %XX escape.
func buildAnnounceURL(announceURL string, infoHash, peerID [20]byte, left int64) string {
	var b strings.Builder
	b.WriteString(announceURL)
	if strings.Contains(announceURL, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	b.WriteString("info_hash=")
	percentEncodeAll(&b, infoHash[:])
	b.WriteString("&peer_id=")
	percentEncodeAll(&b, peerID[:])
	fmt.Fprintf(&b, "&port=%d&uploaded=0&downloaded=0&left=%d&compact=1", Port, left)
	return b.String()
}

const hexDigits = "0123456789abcdef"

// percentEncodeAll writes "%XX" for every byte of data, XX being the
// two-digit lowercase hex of the byte.
func percentEncodeAll(b *strings.Builder, data []byte) {
	for _, c := range data {
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
}

// parseAnnounceResponse decodes a bencoded tracker reply and extracts
// the compact peer list. Only the BEP 23 compact form is supported;
// dictionary-form peer lists are out of scope.
func parseAnnounceResponse(body []byte) ([]Address, error) {
	root, _, err := bencode.Decode(body, 0)
	if err != nil {
		return nil, errors.Wrap(bterrors.ErrTrackerError, "tracker reply is not valid bencode")
	}
	if root.Kind != bencode.KindDict {
		return nil, errors.Wrap(bterrors.ErrTrackerError, "tracker reply is not a dictionary")
	}

	if reason, ok := root.Get("failure reason"); ok {
		return nil, errors.Wrapf(bterrors.ErrTrackerError, "tracker failure: %s", reason.Str)
	}

	peers, ok := root.Get("peers")
	if !ok || peers.Kind != bencode.KindString {
		return nil, errors.Wrap(bterrors.ErrTrackerError, "tracker reply missing peers")
	}
	if len(peers.Str)%addrSize != 0 {
		return nil, errors.Wrapf(bterrors.ErrTrackerError, "peers length %d is not a multiple of %d", len(peers.Str), addrSize)
	}

	addrs := make([]Address, len(peers.Str)/addrSize)
	for i := range addrs {
		chunk := peers.Str[i*addrSize : (i+1)*addrSize]
		ip := make(net.IP, net.IPv4len)
		copy(ip, chunk[:4])
		addrs[i] = Address{
			IP:   ip,
			Port: binary.BigEndian.Uint16(chunk[4:6]),
		}
	}
	return addrs, nil
}
