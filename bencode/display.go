package bencode

import (
	"strconv"
	"strings"
)

// Display renders v for human inspection: integers as decimal, byte
// strings as raw bytes wrapped in double quotes (no escaping -- a
// bencoded byte string is not guaranteed to be UTF-8, and this format is
// not meant to round-trip), lists as "[e1,e2,...]", dictionaries as
// '{"k1":v1,"k2":v2,...}'. Empty containers render as "[]" / "{}".
//
// Keys are shown in the order they were decoded. Real-world torrents
// sometimes violate bencode's lexicographic key-ordering convention;
// Display does not flag or reorder them, matching Decode's tolerance
// (see DESIGN.md).
func Display(v Value) string {
	var b strings.Builder
	displayTo(&b, v)
	return b.String()
}

func displayTo(b *strings.Builder, v Value) {
	switch v.Kind {
	case KindInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KindString:
		b.WriteByte('"')
		b.Write(v.Str)
		b.WriteByte('"')
	case KindList:
		b.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				b.WriteByte(',')
			}
			displayTo(b, item)
		}
		b.WriteByte(']')
	case KindDict:
		b.WriteByte('{')
		for i, e := range v.Dict {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(e.Key)
			b.WriteString(`":`)
			displayTo(b, e.Value)
		}
		b.WriteByte('}')
	}
}
