package bencode

import (
	"github.com/pkg/errors"

	"github.com/torrentlab/gobit/internal/bterrors"
)

// LocateRaw walks the dictionary starting at buf[pos] (which must be the
// opening 'd') looking for key. It skips each non-matching value by
// running the decoder and discarding the resulting tree, and returns the
// offset of the first byte of the matching value's encoding -- not the
// decoded value itself.
//
// The caller is expected to call Decode(buf, start) to learn both the
// value and the offset immediately after it; buf[start:end] is then the
// canonical bencoded representation of the value exactly as it appeared
// in the source, suitable for digesting. Re-encoding a decoded tree is
// not guaranteed to reproduce those bytes (key order, integer
// canonicalisation), so callers that need the original bytes must slice
// the source rather than re-encode.
func LocateRaw(buf []byte, pos int, key string) (start int, err error) {
	if pos >= len(buf) || buf[pos] != 'd' {
		return 0, errors.Wrap(bterrors.ErrMalformedEncoding, "LocateRaw requires a dictionary")
	}
	pos++
	for {
		if pos >= len(buf) {
			return 0, errors.Wrap(bterrors.ErrMalformedEncoding, "dict missing terminating e")
		}
		if buf[pos] == 'e' {
			return 0, errors.Errorf("key %q not found in dictionary", key)
		}
		keyVal, next, err := decodeString(buf, pos)
		if err != nil {
			return 0, err
		}
		pos = next
		if string(keyVal.Str) == key {
			return pos, nil
		}
		_, next, err = decodeAt(buf, pos, 0)
		if err != nil {
			return 0, err
		}
		pos = next
	}
}
