// Package bencode implements BitTorrent's self-describing bencoding:
// a recursive decoder over a byte cursor, plus a raw-slice locator that
// exposes the byte range of a nested dictionary value without
// re-encoding it.
package bencode

import "fmt"

// Kind tags which variant a Value holds.
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindList
	KindDict
)

// DictEntry is one (key, value) pair of a dictionary, kept in the order
// it was encountered during decoding.
type DictEntry struct {
	Key   string
	Value Value
}

// Value is a decoded bencoded value: exactly one of its fields is
// meaningful, selected by Kind. String payloads are copied out of the
// source buffer, so a Value outlives the buffer it was decoded from.
type Value struct {
	Kind Kind
	Int  int64
	Str  []byte
	List []Value
	Dict []DictEntry
}

// Get returns the value associated with key in a dictionary Value, in
// linear time. The bool result is false if v is not a dictionary or key
// is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindDict {
		return Value{}, false
	}
	for _, e := range v.Dict {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindString:
		return string(v.Str)
	case KindList:
		return fmt.Sprintf("%+v", v.List)
	case KindDict:
		return fmt.Sprintf("%+v", v.Dict)
	default:
		return "<invalid bencode value>"
	}
}
