package encoding

import (
	"encoding/binary"

	"github.com/jobeland/hexastore/pkg/hexa"
	"github.com/jobeland/hexastore/pkg/store"
	"github.com/zeebo/xxh3"
)

const (
	// Width of the per-field length prefix in the triple payload
	lenSize = 4

	// Delimiter between key components. Components are canonicalized
	// UTF-8 and never contain a null byte, so prefix scans stay aligned.
	keyDelim = 0x00
)

// Codec implements store.Codec with length-prefixed payloads and
// delimiter-separated index keys
type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

// EncodeTriple serializes a triple into five length-prefixed fields:
// subject, predicate, is_id byte, 2-byte little-endian type tag, object raw.
// Each field is preceded by a 4-byte little-endian length.
func (c *Codec) EncodeTriple(t *hexa.Triple) []byte {
	subject := []byte(t.Subject)
	predicate := []byte(t.Predicate)
	object := []byte(t.Object.Raw)

	isID := []byte{0}
	if t.Object.IsID {
		isID[0] = 1
	}

	tag := make([]byte, 2)
	binary.LittleEndian.PutUint16(tag, uint16(t.Object.Type))

	size := 5*lenSize + len(subject) + len(predicate) + len(isID) + len(tag) + len(object)
	buf := make([]byte, 0, size)

	buf = appendField(buf, subject)
	buf = appendField(buf, predicate)
	buf = appendField(buf, isID)
	buf = appendField(buf, tag)
	buf = appendField(buf, object)

	return buf
}

func appendField(buf, field []byte) []byte {
	var length [lenSize]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(field)))
	buf = append(buf, length[:]...)
	return append(buf, field...)
}

// Namespace derives the fixed-width key prefix for a (store id, graph name)
// pair using a 64-bit xxhash3
func (c *Codec) Namespace(storeID, graph string) store.Namespace {
	var ns store.Namespace
	h := xxh3.HashString(storeID + "/" + graph)
	binary.BigEndian.PutUint64(ns[:], h)
	return ns
}

// EncodeKey builds an index key: namespace, then each component preceded by
// the delimiter, in the order of the target table
func (c *Codec) EncodeKey(ns store.Namespace, parts ...string) []byte {
	size := len(ns)
	for _, p := range parts {
		size += 1 + len(p)
	}

	key := make([]byte, 0, size)
	key = append(key, ns[:]...)
	for _, p := range parts {
		key = append(key, keyDelim)
		key = append(key, p...)
	}
	return key
}

// ScanPrefix builds the prefix bounding a scan over keys whose leading
// components equal parts exactly. The trailing delimiter keeps a component
// from matching keys where it is merely a byte prefix of a longer one.
func (c *Codec) ScanPrefix(ns store.Namespace, parts ...string) []byte {
	return append(c.EncodeKey(ns, parts...), keyDelim)
}
