package store

import (
	"github.com/jobeland/hexastore/pkg/hexa"
)

// Namespace is the fixed-width key prefix isolating one store's graph.
// Per-store prefix scans rely on it never varying in length.
type Namespace [8]byte

// Codec handles the binary triple payload and the index key layout.
// Defined here so the store depends on the contract, not the concrete
// encoder.
type Codec interface {
	// EncodeTriple serializes a triple into the self-describing payload
	// stored as the value of every index entry
	EncodeTriple(t *hexa.Triple) []byte

	// DecodeTriple is the inverse of EncodeTriple.
	// Returns ErrCorruptTriple if the buffer is malformed.
	DecodeTriple(buf []byte) (*hexa.Triple, error)

	// Namespace derives the key prefix for a (store id, graph name) pair
	Namespace(storeID, graph string) Namespace

	// EncodeKey builds an index key from the namespace and the triple
	// components in the order of the target table
	EncodeKey(ns Namespace, parts ...string) []byte

	// ScanPrefix builds the prefix bounding a scan over keys whose
	// leading components equal parts exactly
	ScanPrefix(ns Namespace, parts ...string) []byte
}
