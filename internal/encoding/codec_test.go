package encoding

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/jobeland/hexastore/pkg/hexa"
	"github.com/jobeland/hexastore/pkg/store"
)

func TestTripleRoundTrip(t *testing.T) {
	codec := NewCodec()

	triples := []*hexa.Triple{
		hexa.NewDataTriple("a1", "name", "Alice"),
		hexa.NewDataTriple("a1", "age", "30"),
		hexa.NewDataTriple("a1", "height", "1.75"),
		hexa.NewDataTriple("a1", "active", "true"),
		hexa.NewDataTriple("a1", "born", "1991-05-14"),
		hexa.NewDataTriple("a1", "note", ""),
		hexa.NewEdgeTriple("a1", "knows", "a2"),
		hexa.NewDataTriple("sé", "prédicat", "café ☕"),
	}

	for _, original := range triples {
		decoded, err := codec.DecodeTriple(codec.EncodeTriple(original))
		if err != nil {
			t.Fatalf("decode failed for %s: %v", original, err)
		}
		if !decoded.Equals(original) {
			t.Errorf("round trip mismatch: %s != %s", decoded, original)
		}
	}
}

func TestDecodeCorruptTriple(t *testing.T) {
	codec := NewCodec()
	valid := codec.EncodeTriple(hexa.NewDataTriple("a1", "name", "Alice"))

	cases := []struct {
		name string
		buf  []byte
	}{
		{"empty", []byte{}},
		{"truncated length prefix", valid[:2]},
		{"truncated field", valid[:len(valid)-3]},
		{"trailing bytes", append(append([]byte{}, valid...), 0x01)},
	}

	for _, c := range cases {
		if _, err := codec.DecodeTriple(c.buf); !errors.Is(err, store.ErrCorruptTriple) {
			t.Errorf("%s: expected ErrCorruptTriple, got %v", c.name, err)
		}
	}
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	codec := NewCodec()
	buf := codec.EncodeTriple(hexa.NewDataTriple("a1", "name", "Alice"))

	// The tag field sits after subject and predicate fields plus the is_id
	// field: 4+2 + 4+4 + 4+1 + 4 bytes in
	tagOffset := (4 + 2) + (4 + 4) + (4 + 1) + 4
	binary.LittleEndian.PutUint16(buf[tagOffset:], 0xFFFF)

	if _, err := codec.DecodeTriple(buf); !errors.Is(err, store.ErrCorruptTriple) {
		t.Errorf("expected ErrCorruptTriple for unknown tag, got %v", err)
	}
}

func TestDecodeRejectsBadIsID(t *testing.T) {
	codec := NewCodec()
	buf := codec.EncodeTriple(hexa.NewDataTriple("a1", "name", "Alice"))

	isIDOffset := (4 + 2) + (4 + 4) + 4
	buf[isIDOffset] = 2

	if _, err := codec.DecodeTriple(buf); !errors.Is(err, store.ErrCorruptTriple) {
		t.Errorf("expected ErrCorruptTriple for is_id=2, got %v", err)
	}
}

func TestNamespaceIsStable(t *testing.T) {
	codec := NewCodec()

	a := codec.Namespace("store1", "data")
	b := codec.Namespace("store1", "data")
	if a != b {
		t.Error("expected namespace derivation to be deterministic")
	}

	if codec.Namespace("store1", "data") == codec.Namespace("store2", "data") {
		t.Error("expected distinct stores to get distinct namespaces")
	}
	if codec.Namespace("store1", "data") == codec.Namespace("store1", "infer") {
		t.Error("expected distinct graphs to get distinct namespaces")
	}
}

func TestScanPrefixBoundsExactComponents(t *testing.T) {
	codec := NewCodec()
	ns := codec.Namespace("s", "data")

	// A key for component "knows" must not fall under the prefix for "know"
	full := codec.EncodeKey(ns, "knows", "a2", "a1")
	shortPrefix := codec.ScanPrefix(ns, "know")
	exactPrefix := codec.ScanPrefix(ns, "knows")

	if bytes.HasPrefix(full, shortPrefix) {
		t.Error("prefix for 'know' must not match keys for 'knows'")
	}
	if !bytes.HasPrefix(full, exactPrefix) {
		t.Error("prefix for 'knows' must match its own keys")
	}
}

func TestKeyOrderFollowsComponents(t *testing.T) {
	codec := NewCodec()
	ns := codec.Namespace("s", "data")

	// Within a fixed (p, o) prefix, keys sort ascending by the third part
	k1 := codec.EncodeKey(ns, "type", "T", "s1")
	k2 := codec.EncodeKey(ns, "type", "T", "s2")
	if bytes.Compare(k1, k2) >= 0 {
		t.Error("expected s1 key to sort before s2 key")
	}

	// A shorter component sorts before a longer one it prefixes
	k3 := codec.EncodeKey(ns, "type", "T", "s")
	if bytes.Compare(k3, k1) >= 0 {
		t.Error("expected s key to sort before s1 key")
	}
}
