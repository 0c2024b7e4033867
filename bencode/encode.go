package bencode

import (
	"strconv"
	"strings"
)

// Encode returns the canonical bencoded representation of v. Dictionary
// entries are written in the order stored on the Value (Decode already
// preserves source order, so no re-sort is performed here); callers that build a Value by hand are responsible
// for keeping keys in lexicographic order if they need canonical output.
func Encode(v Value) []byte {
	var b strings.Builder
	encodeTo(&b, v)
	return []byte(b.String())
}

func encodeTo(b *strings.Builder, v Value) {
	switch v.Kind {
	case KindInt:
		b.WriteByte('i')
		b.WriteString(strconv.FormatInt(v.Int, 10))
		b.WriteByte('e')
	case KindString:
		b.WriteString(strconv.Itoa(len(v.Str)))
		b.WriteByte(':')
		b.Write(v.Str)
	case KindList:
		b.WriteByte('l')
		for _, item := range v.List {
			encodeTo(b, item)
		}
		b.WriteByte('e')
	case KindDict:
		b.WriteByte('d')
		for _, e := range v.Dict {
			b.WriteString(strconv.Itoa(len(e.Key)))
			b.WriteByte(':')
			b.WriteString(e.Key)
			encodeTo(b, e.Value)
		}
		b.WriteByte('e')
	}
}
