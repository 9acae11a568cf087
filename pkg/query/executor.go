package query

import (
	"fmt"

	"github.com/jobeland/hexastore/pkg/graph"
	"github.com/jobeland/hexastore/pkg/hexa"
	"github.com/jobeland/hexastore/pkg/store"
)

// Executor runs object queries against a graph handle.
// Each query is a single synchronous pass: one seed scan through the most
// selective index, narrowed per record by the remaining constraints, cut at
// the page size.
type Executor struct {
	graph           *graph.Graph
	defaultPageSize int
}

// NewExecutor creates an executor with the default page size
func NewExecutor(g *graph.Graph) *Executor {
	return NewExecutorWithPageSize(g, DefaultPageSize)
}

// NewExecutorWithPageSize creates an executor with a custom default page size
func NewExecutorWithPageSize(g *graph.Graph, pageSize int) *Executor {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Executor{
		graph:           g,
		defaultPageSize: pageSize,
	}
}

// keepFunc decides whether a candidate triple survives one constraint stage
type keepFunc func(t *hexa.Triple) (bool, error)

// Execute runs a query and returns one page of results
func (e *Executor) Execute(q *ObjectQueryModel) (*Response, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	// Id shortcut: the first triple of the subject, no pagination
	if q.ID != "" {
		return e.executeByID(q.ID)
	}

	seedKey := q.seedPredicate()
	seed, stages, err := e.buildStages(q, seedKey)
	if err != nil {
		return nil, err
	}
	defer seed.Close()

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = e.defaultPageSize
	}

	values := make([]*hexa.Triple, 0, pageSize)
	for len(values) < pageSize && seed.Next() {
		t, err := seed.Triple()
		if err != nil {
			// A decode failure taints the whole query; unreadable
			// records are never skipped
			return nil, err
		}

		ok, err := passes(t, stages)
		if err != nil {
			return nil, err
		}
		if ok {
			values = append(values, t)
		}
	}

	resp := &Response{Values: values}
	if len(values) == pageSize {
		resp.Continuation = values[len(values)-1]
	}
	return resp, nil
}

func (e *Executor) executeByID(id string) (*Response, error) {
	it, err := e.graph.S(id)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	resp := &Response{Values: []*hexa.Triple{}}
	if it.Next() {
		t, err := it.Triple()
		if err != nil {
			return nil, err
		}
		resp.Values = append(resp.Values, t)
	}
	return resp, nil
}

// buildStages opens the seed scan and assembles the constraint stages that
// narrow it: the seed comparator (when the seed is not an eq scan), the
// remaining filters, then outgoing and incoming link constraints in order
func (e *Executor) buildStages(q *ObjectQueryModel, seedKey string) (store.TripleIterator, []keepFunc, error) {
	seedUnit := q.Filter[seedKey]
	seedValue := hexa.FromRaw(seedUnit.Value)

	var stages []keepFunc

	var seed store.TripleIterator
	var err error
	if seedUnit.Operator == OpEq {
		// Direct ordered scan on POS
		seed, err = e.graph.PO(seedKey, seedValue, q.Continuation)
	} else {
		// No ordered range exists for open intervals over the encoded
		// object bytes; scan the predicate and filter per record
		keep, cerr := comparatorKeep(seedUnit.Operator, seedValue)
		if cerr != nil {
			return nil, nil, cerr
		}
		seed, err = e.graph.P(seedKey, q.Continuation)
		stages = append(stages, func(t *hexa.Triple) (bool, error) {
			return keep(t.Object), nil
		})
	}
	if err != nil {
		return nil, nil, err
	}

	for k, unit := range q.Filter {
		if k == seedKey {
			continue
		}
		stage, err := e.filterStage(k, unit)
		if err != nil {
			seed.Close()
			return nil, nil, err
		}
		stages = append(stages, stage)
	}

	for _, link := range q.HasObject {
		link := link
		stages = append(stages, func(t *hexa.Triple) (bool, error) {
			return e.outgoingMatches(t.Subject, &link)
		})
	}
	for _, link := range q.HasSubject {
		link := link
		stages = append(stages, func(t *hexa.Triple) (bool, error) {
			return e.incomingMatches(t.Subject, &link)
		})
	}

	return seed, stages, nil
}

func passes(t *hexa.Triple, stages []keepFunc) (bool, error) {
	for _, stage := range stages {
		ok, err := stage(t)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// filterStage narrows candidates by subject against one remaining filter
func (e *Executor) filterStage(predicate string, unit QueryUnit) (keepFunc, error) {
	value := hexa.FromRaw(unit.Value)

	if unit.Operator == OpEq {
		return func(t *hexa.Triple) (bool, error) {
			return e.graph.Exists(t.Subject, predicate, value)
		}, nil
	}

	keep, err := comparatorKeep(unit.Operator, value)
	if err != nil {
		return nil, err
	}
	return func(t *hexa.Triple) (bool, error) {
		return e.subjectHasMatch(t.Subject, predicate, keep)
	}, nil
}

// subjectHasMatch reports whether any (subject, predicate, ?) triple
// satisfies the comparator
func (e *Executor) subjectHasMatch(subject, predicate string, keep func(hexa.Value) bool) (bool, error) {
	it, err := e.graph.SP(subject, predicate)
	if err != nil {
		return false, err
	}
	defer it.Close()

	for it.Next() {
		t, err := it.Triple()
		if err != nil {
			return false, err
		}
		if keep(t.Object) {
			return true, nil
		}
	}
	return false, nil
}

// comparatorKeep builds the type-aware predicate for one operator.
// Operator dispatch lives here alone; the value model owns the semantics.
func comparatorKeep(op Operator, want hexa.Value) (func(hexa.Value) bool, error) {
	switch op {
	case OpEq:
		return func(got hexa.Value) bool {
			return got.Raw == want.Raw
		}, nil
	case OpGt:
		return func(got hexa.Value) bool {
			return hexa.Compare(got, want) == hexa.Greater
		}, nil
	case OpGe:
		return func(got hexa.Value) bool {
			ord := hexa.Compare(got, want)
			return ord == hexa.Greater || ord == hexa.Equal
		}, nil
	case OpLt:
		return func(got hexa.Value) bool {
			return hexa.Compare(got, want) == hexa.Less
		}, nil
	case OpLe:
		return func(got hexa.Value) bool {
			ord := hexa.Compare(got, want)
			return ord == hexa.Less || ord == hexa.Equal
		}, nil
	case OpContains:
		return func(got hexa.Value) bool {
			return hexa.Contains(got, want.Raw)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComparator, op)
	}
}
