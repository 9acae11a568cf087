package store

import (
	"errors"
)

var (
	ErrNotFound         = errors.New("key not found")
	ErrTransactionRO    = errors.New("transaction is read-only")
	ErrCorruptTriple    = errors.New("corrupt triple record")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Storage is the interface for the underlying ordered key-value store
type Storage interface {
	// Begin starts a new transaction
	Begin(writable bool) (Transaction, error)

	// Close closes the storage
	Close() error

	// Sync flushes writes to disk
	Sync() error
}

// Transaction represents a database transaction with snapshot isolation
type Transaction interface {
	// Get retrieves a value by key
	Get(table Table, key []byte) ([]byte, error)

	// Set stores a key-value pair
	Set(table Table, key, value []byte) error

	// Delete removes a key
	Delete(table Table, key []byte) error

	// Scan iterates over keys sharing prefix in ascending byte order.
	// If seek is non-nil, iteration starts at the first key >= seek;
	// otherwise it starts at the beginning of the prefix range.
	Scan(table Table, prefix, seek []byte) (Iterator, error)

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error
}

// Iterator iterates over key-value pairs
type Iterator interface {
	// Next advances to the next item
	Next() bool

	// Key returns the current key
	Key() []byte

	// Value returns the current value
	Value() ([]byte, error)

	// Close closes the iterator
	Close() error
}

// Table represents one index permutation in the storage
type Table byte

const (
	// The six triple permutations; every triple is written to all of them
	TableSPO Table = iota
	TableSOP
	TablePSO
	TablePOS
	TableOSP
	TableOPS

	// Total number of tables
	TableCount
)

func (t Table) String() string {
	switch t {
	case TableSPO:
		return "spo"
	case TableSOP:
		return "sop"
	case TablePSO:
		return "pso"
	case TablePOS:
		return "pos"
	case TableOSP:
		return "osp"
	case TableOPS:
		return "ops"
	default:
		return "unknown"
	}
}

// AllTables lists the six permutations in write order
var AllTables = []Table{TableSPO, TableSOP, TablePSO, TablePOS, TableOSP, TableOPS}

// TablePrefix returns a byte prefix for a table to namespace keys
func TablePrefix(table Table) []byte {
	return []byte{byte(table)}
}

// PrefixKey adds a table prefix to a key
func PrefixKey(table Table, key []byte) []byte {
	prefix := TablePrefix(table)
	result := make([]byte, len(prefix)+len(key))
	copy(result, prefix)
	copy(result[len(prefix):], key)
	return result
}
