package store

import (
	"fmt"

	"github.com/jobeland/hexastore/pkg/hexa"
)

// TripleIterator is a lazy sequence of triples in index order
type TripleIterator interface {
	// Next advances to the next triple
	Next() bool

	// Triple decodes the current record
	Triple() (*hexa.Triple, error)

	// Close releases the read transaction
	Close() error
}

// S returns every triple with the given subject, ordered by (predicate, object)
func (s *TripleStore) S(ns Namespace, subject string) (TripleIterator, error) {
	return s.scan(TableSPO, s.codec.ScanPrefix(ns, subject), nil)
}

// P returns every triple with the given predicate, ordered by (object, subject).
// With a continuation, results are strictly after it in POS order.
func (s *TripleStore) P(ns Namespace, predicate string, continuation *hexa.Triple) (TripleIterator, error) {
	var seek []byte
	if continuation != nil {
		seek = s.successor(ns, TablePOS, continuation)
	}
	return s.scan(TablePOS, s.codec.ScanPrefix(ns, predicate), seek)
}

// O returns every triple with the given object, ordered by (subject, predicate)
func (s *TripleStore) O(ns Namespace, object hexa.Value) (TripleIterator, error) {
	return s.scan(TableOSP, s.codec.ScanPrefix(ns, object.Raw), nil)
}

// SP returns every triple with the given subject and predicate, ordered by object
func (s *TripleStore) SP(ns Namespace, subject, predicate string) (TripleIterator, error) {
	return s.scan(TableSPO, s.codec.ScanPrefix(ns, subject, predicate), nil)
}

// PO returns every triple with the given predicate and object, ordered by subject.
// With a continuation, results are strictly after it in POS order.
func (s *TripleStore) PO(ns Namespace, predicate string, object hexa.Value, continuation *hexa.Triple) (TripleIterator, error) {
	var seek []byte
	if continuation != nil {
		seek = s.successor(ns, TablePOS, continuation)
	}
	return s.scan(TablePOS, s.codec.ScanPrefix(ns, predicate, object.Raw), seek)
}

// successor computes the smallest key strictly greater than the triple's key
// in the given table: its full key with a zero byte appended
func (s *TripleStore) successor(ns Namespace, table Table, t *hexa.Triple) []byte {
	key := s.codec.EncodeKey(ns, keyParts(table, t)...)
	return append(key, 0x00)
}

// scan opens a read transaction and wraps the raw iterator with per-record
// payload decoding
func (s *TripleStore) scan(table Table, prefix, seek []byte) (TripleIterator, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return nil, err
	}

	it, err := txn.Scan(table, prefix, seek)
	if err != nil {
		txn.Rollback()
		return nil, err
	}

	return &tripleIterator{
		codec: s.codec,
		txn:   txn,
		it:    it,
	}, nil
}

// tripleIterator implements TripleIterator over a raw KV iterator
type tripleIterator struct {
	codec  Codec
	txn    Transaction
	it     Iterator
	closed bool
}

func (ti *tripleIterator) Next() bool {
	if ti.closed {
		return false
	}
	return ti.it.Next()
}

func (ti *tripleIterator) Triple() (*hexa.Triple, error) {
	if ti.closed {
		return nil, fmt.Errorf("iterator closed")
	}

	value, err := ti.it.Value()
	if err != nil {
		return nil, err
	}

	return ti.codec.DecodeTriple(value)
}

func (ti *tripleIterator) Close() error {
	if ti.closed {
		return nil
	}
	ti.closed = true
	ti.it.Close()
	return ti.txn.Rollback()
}
