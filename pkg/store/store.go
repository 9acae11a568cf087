package store

import (
	"errors"

	"github.com/jobeland/hexastore/pkg/hexa"
)

// TripleStore manages the six-index triple graph over an ordered KV store
type TripleStore struct {
	storage Storage
	codec   Codec
}

// NewTripleStore creates a new triple store
func NewTripleStore(storage Storage, codec Codec) *TripleStore {
	return &TripleStore{
		storage: storage,
		codec:   codec,
	}
}

// Close closes the triple store
func (s *TripleStore) Close() error {
	return s.storage.Close()
}

// NamespaceFor derives the key prefix for a (store id, graph name) pair
func (s *TripleStore) NamespaceFor(storeID, graph string) Namespace {
	return s.codec.Namespace(storeID, graph)
}

// keyParts returns the triple components in the key order of a table
func keyParts(table Table, t *hexa.Triple) []string {
	s, p, o := t.Subject, t.Predicate, t.Object.Raw
	switch table {
	case TableSPO:
		return []string{s, p, o}
	case TableSOP:
		return []string{s, o, p}
	case TablePSO:
		return []string{p, s, o}
	case TablePOS:
		return []string{p, o, s}
	case TableOSP:
		return []string{o, s, p}
	case TableOPS:
		return []string{o, p, s}
	default:
		return nil
	}
}

// Insert writes a triple to all six indexes in a single transaction
func (s *TripleStore) Insert(ns Namespace, t *hexa.Triple) error {
	return s.InsertBatch(ns, []*hexa.Triple{t})
}

// InsertBatch writes triples to all six indexes in a single transaction.
// Readers never observe a partial multi-index update.
func (s *TripleStore) InsertBatch(ns Namespace, triples []*hexa.Triple) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	for _, t := range triples {
		payload := s.codec.EncodeTriple(t)
		for _, table := range AllTables {
			key := s.codec.EncodeKey(ns, keyParts(table, t)...)
			if err := txn.Set(table, key, payload); err != nil {
				return err
			}
		}
	}

	return txn.Commit()
}

// Remove deletes a triple from all six indexes in a single transaction
func (s *TripleStore) Remove(ns Namespace, t *hexa.Triple) error {
	return s.RemoveBatch(ns, []*hexa.Triple{t})
}

// RemoveBatch deletes triples from all six indexes in a single transaction
func (s *TripleStore) RemoveBatch(ns Namespace, triples []*hexa.Triple) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	for _, t := range triples {
		for _, table := range AllTables {
			key := s.codec.EncodeKey(ns, keyParts(table, t)...)
			if err := txn.Delete(table, key); err != nil {
				return err
			}
		}
	}

	return txn.Commit()
}

// Exists checks membership of (s, p, o) via a point lookup on the SPO index
func (s *TripleStore) Exists(ns Namespace, subject, predicate string, object hexa.Value) (bool, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return false, err
	}
	defer txn.Rollback()

	key := s.codec.EncodeKey(ns, subject, predicate, object.Raw)
	_, err = txn.Get(TableSPO, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of triples in the namespace
func (s *TripleStore) Count(ns Namespace) (int64, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return 0, err
	}
	defer txn.Rollback()

	it, err := txn.Scan(TableSPO, s.codec.ScanPrefix(ns), nil)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	count := int64(0)
	for it.Next() {
		count++
	}

	return count, nil
}
