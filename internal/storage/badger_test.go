package storage

import (
	"testing"

	"github.com/jobeland/hexastore/internal/encoding"
	"github.com/jobeland/hexastore/pkg/hexa"
	"github.com/jobeland/hexastore/pkg/store"
)

func newTestStore(t *testing.T) (*store.TripleStore, store.Namespace) {
	t.Helper()

	tmpDir := t.TempDir()
	badgerStorage, err := NewBadgerStorage(tmpDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { badgerStorage.Close() })

	codec := encoding.NewCodec()
	ts := store.NewTripleStore(badgerStorage, codec)
	return ts, codec.Namespace("test", "data")
}

func collect(t *testing.T, it store.TripleIterator, err error) []*hexa.Triple {
	t.Helper()
	if err != nil {
		t.Fatalf("failed to open iterator: %v", err)
	}
	defer it.Close()

	var triples []*hexa.Triple
	for it.Next() {
		triple, err := it.Triple()
		if err != nil {
			t.Fatalf("failed to decode triple: %v", err)
		}
		triples = append(triples, triple)
	}
	return triples
}

func TestInsertAndPrimitives(t *testing.T) {
	ts, ns := newTestStore(t)

	triple := hexa.NewDataTriple("a1", "name", "Alice")
	if err := ts.Insert(ns, triple); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	// After insert, every applicable primitive returns the triple
	it, err := ts.S(ns, "a1")
	if got := collect(t, it, err); len(got) != 1 || !got[0].Equals(triple) {
		t.Errorf("S: expected the inserted triple, got %v", got)
	}

	it, err = ts.P(ns, "name", nil)
	if got := collect(t, it, err); len(got) != 1 || !got[0].Equals(triple) {
		t.Errorf("P: expected the inserted triple, got %v", got)
	}

	it, err = ts.O(ns, triple.Object)
	if got := collect(t, it, err); len(got) != 1 || !got[0].Equals(triple) {
		t.Errorf("O: expected the inserted triple, got %v", got)
	}

	it, err = ts.SP(ns, "a1", "name")
	if got := collect(t, it, err); len(got) != 1 || !got[0].Equals(triple) {
		t.Errorf("SP: expected the inserted triple, got %v", got)
	}

	it, err = ts.PO(ns, "name", triple.Object, nil)
	if got := collect(t, it, err); len(got) != 1 || !got[0].Equals(triple) {
		t.Errorf("PO: expected the inserted triple, got %v", got)
	}

	exists, err := ts.Exists(ns, "a1", "name", triple.Object)
	if err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}
	if !exists {
		t.Error("Exists: expected true after insert")
	}
}

func TestRemoveClearsAllIndexes(t *testing.T) {
	ts, ns := newTestStore(t)

	triple := hexa.NewDataTriple("a1", "name", "Alice")
	if err := ts.Insert(ns, triple); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	if err := ts.Remove(ns, triple); err != nil {
		t.Fatalf("failed to remove: %v", err)
	}

	it, err := ts.S(ns, "a1")
	if got := collect(t, it, err); len(got) != 0 {
		t.Errorf("S: expected no triples after remove, got %v", got)
	}

	it, err = ts.P(ns, "name", nil)
	if got := collect(t, it, err); len(got) != 0 {
		t.Errorf("P: expected no triples after remove, got %v", got)
	}

	it, err = ts.PO(ns, "name", triple.Object, nil)
	if got := collect(t, it, err); len(got) != 0 {
		t.Errorf("PO: expected no triples after remove, got %v", got)
	}

	exists, err := ts.Exists(ns, "a1", "name", triple.Object)
	if err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}
	if exists {
		t.Error("Exists: expected false after remove")
	}
}

func TestPOOrderAndContinuation(t *testing.T) {
	ts, ns := newTestStore(t)

	subjects := []string{"s1", "s2", "s3", "s4", "s5"}
	var triples []*hexa.Triple
	for _, s := range subjects {
		triples = append(triples, hexa.NewDataTriple(s, "type", "T"))
	}
	if err := ts.InsertBatch(ns, triples); err != nil {
		t.Fatalf("failed to batch insert: %v", err)
	}

	object := hexa.FromRaw("T")

	// PO returns triples strictly ascending by subject
	it, err := ts.PO(ns, "type", object, nil)
	got := collect(t, it, err)
	if len(got) != len(subjects) {
		t.Fatalf("expected %d triples, got %d", len(subjects), len(got))
	}
	for i, triple := range got {
		if triple.Subject != subjects[i] {
			t.Errorf("position %d: expected subject %s, got %s", i, subjects[i], triple.Subject)
		}
	}

	// Feeding the last element back as continuation yields the next page
	// with no overlap and no gap
	it, err = ts.PO(ns, "type", object, got[1])
	second := collect(t, it, err)
	if len(second) != 3 {
		t.Fatalf("expected 3 remaining triples, got %d", len(second))
	}
	if second[0].Subject != "s3" {
		t.Errorf("expected continuation to resume at s3, got %s", second[0].Subject)
	}
}

func TestPOrderedByObjectThenSubject(t *testing.T) {
	ts, ns := newTestStore(t)

	triples := []*hexa.Triple{
		hexa.NewDataTriple("b1", "name", "Bob"),
		hexa.NewDataTriple("a1", "name", "Alice"),
		hexa.NewDataTriple("a2", "name", "Alice"),
	}
	if err := ts.InsertBatch(ns, triples); err != nil {
		t.Fatalf("failed to batch insert: %v", err)
	}

	it, err := ts.P(ns, "name", nil)
	got := collect(t, it, err)
	if len(got) != 3 {
		t.Fatalf("expected 3 triples, got %d", len(got))
	}

	// Ascending by (object, subject): both Alices before Bob
	wantSubjects := []string{"a1", "a2", "b1"}
	for i, triple := range got {
		if triple.Subject != wantSubjects[i] {
			t.Errorf("position %d: expected subject %s, got %s", i, wantSubjects[i], triple.Subject)
		}
	}
}

func TestNamespaceIsolation(t *testing.T) {
	ts, ns := newTestStore(t)
	other := encoding.NewCodec().Namespace("other", "data")

	if err := ts.Insert(ns, hexa.NewDataTriple("a1", "name", "Alice")); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	it, err := ts.S(other, "a1")
	if got := collect(t, it, err); len(got) != 0 {
		t.Errorf("expected no triples in other namespace, got %v", got)
	}

	count, err := ts.Count(other)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0 in other namespace, got %d", count)
	}
}

func TestCount(t *testing.T) {
	ts, ns := newTestStore(t)

	triples := []*hexa.Triple{
		hexa.NewDataTriple("a1", "name", "Alice"),
		hexa.NewDataTriple("a1", "age", "30"),
		hexa.NewEdgeTriple("a1", "knows", "a2"),
	}
	if err := ts.InsertBatch(ns, triples); err != nil {
		t.Fatalf("failed to batch insert: %v", err)
	}

	count, err := ts.Count(ns)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
}

func TestEdgeObjectKeepsFidelity(t *testing.T) {
	ts, ns := newTestStore(t)

	// Keys carry raw strings only; the payload keeps is_id and the type
	// tag, so the edge round-trips with full fidelity
	edge := hexa.NewEdgeTriple("a1", "knows", "a2")
	if err := ts.Insert(ns, edge); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	it, err := ts.PO(ns, "knows", hexa.NewID("a2"), nil)
	got := collect(t, it, err)
	if len(got) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(got))
	}
	if !got[0].Object.IsID {
		t.Error("expected decoded object to keep is_id")
	}
}
