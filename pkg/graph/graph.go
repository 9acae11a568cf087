// Package graph exposes the lookup primitives of one store's graph under a
// single handle, so callers need not know which index permutation satisfies
// a pattern.
package graph

import (
	"github.com/jobeland/hexastore/pkg/hexa"
	"github.com/jobeland/hexastore/pkg/store"
)

// Name identifies one of the conceptual graphs a store owns
type Name string

const (
	Data  Name = "data"
	Infer Name = "infer"
	Meta  Name = "meta"
)

// Graph is a handle on a single (store id, graph name) pair
type Graph struct {
	store   *store.TripleStore
	ns      store.Namespace
	storeID string
	name    Name
}

// New binds a handle to the data graph of a store
func New(ts *store.TripleStore, storeID string) *Graph {
	return NewNamed(ts, storeID, Data)
}

// NewNamed binds a handle to a named graph of a store
func NewNamed(ts *store.TripleStore, storeID string, name Name) *Graph {
	return &Graph{
		store:   ts,
		ns:      ts.NamespaceFor(storeID, string(name)),
		storeID: storeID,
		name:    name,
	}
}

// StoreID returns the store this handle is bound to
func (g *Graph) StoreID() string {
	return g.storeID
}

// Name returns the graph this handle is bound to
func (g *Graph) Name() Name {
	return g.name
}

// Insert writes a triple to all six indexes atomically
func (g *Graph) Insert(t *hexa.Triple) error {
	return g.store.Insert(g.ns, t)
}

// InsertBatch writes triples to all six indexes in one transaction
func (g *Graph) InsertBatch(triples []*hexa.Triple) error {
	return g.store.InsertBatch(g.ns, triples)
}

// Remove deletes a triple from all six indexes atomically
func (g *Graph) Remove(t *hexa.Triple) error {
	return g.store.Remove(g.ns, t)
}

// RemoveBatch deletes triples from all six indexes in one transaction
func (g *Graph) RemoveBatch(triples []*hexa.Triple) error {
	return g.store.RemoveBatch(g.ns, triples)
}

// S returns triples with the given subject, ordered by (predicate, object)
func (g *Graph) S(subject string) (store.TripleIterator, error) {
	return g.store.S(g.ns, subject)
}

// P returns triples with the given predicate, ordered by (object, subject)
func (g *Graph) P(predicate string, continuation *hexa.Triple) (store.TripleIterator, error) {
	return g.store.P(g.ns, predicate, continuation)
}

// O returns triples with the given object, ordered by (subject, predicate)
func (g *Graph) O(object hexa.Value) (store.TripleIterator, error) {
	return g.store.O(g.ns, object)
}

// SP returns triples with the given subject and predicate, ordered by object
func (g *Graph) SP(subject, predicate string) (store.TripleIterator, error) {
	return g.store.SP(g.ns, subject, predicate)
}

// PO returns triples with the given predicate and object, ordered by subject
func (g *Graph) PO(predicate string, object hexa.Value, continuation *hexa.Triple) (store.TripleIterator, error) {
	return g.store.PO(g.ns, predicate, object, continuation)
}

// Exists checks membership of (subject, predicate, object)
func (g *Graph) Exists(subject, predicate string, object hexa.Value) (bool, error) {
	return g.store.Exists(g.ns, subject, predicate, object)
}

// Count returns the number of triples in the graph
func (g *Graph) Count() (int64, error) {
	return g.store.Count(g.ns)
}
