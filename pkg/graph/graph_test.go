package graph_test

import (
	"testing"

	"github.com/jobeland/hexastore/internal/encoding"
	"github.com/jobeland/hexastore/internal/storage"
	"github.com/jobeland/hexastore/pkg/graph"
	"github.com/jobeland/hexastore/pkg/hexa"
	"github.com/jobeland/hexastore/pkg/store"
)

func newTripleStore(t *testing.T) *store.TripleStore {
	t.Helper()

	badgerStorage, err := storage.NewBadgerStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { badgerStorage.Close() })

	return store.NewTripleStore(badgerStorage, encoding.NewCodec())
}

func TestStoresAreIsolated(t *testing.T) {
	ts := newTripleStore(t)

	g1 := graph.New(ts, "store1")
	g2 := graph.New(ts, "store2")

	if err := g1.Insert(hexa.NewDataTriple("a1", "name", "Alice")); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	exists, err := g1.Exists("a1", "name", hexa.FromRaw("Alice"))
	if err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}
	if !exists {
		t.Error("expected triple in store1")
	}

	exists, err = g2.Exists("a1", "name", hexa.FromRaw("Alice"))
	if err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}
	if exists {
		t.Error("expected store2 to be empty")
	}
}

func TestNamedGraphsAreIsolated(t *testing.T) {
	ts := newTripleStore(t)

	data := graph.NewNamed(ts, "store1", graph.Data)
	infer := graph.NewNamed(ts, "store1", graph.Infer)

	if err := data.Insert(hexa.NewEdgeTriple("a1", "knows", "a2")); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	count, err := infer.Count()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected infer graph to be empty, got %d", count)
	}

	count, err = data.Count()
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 triple in data graph, got %d", count)
	}
}
