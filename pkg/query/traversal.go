package query

import (
	"github.com/jobeland/hexastore/pkg/hexa"
	"github.com/jobeland/hexastore/pkg/store"
)

// frontier is the set of subjects currently reachable during a traversal
type frontier map[string]struct{}

func newFrontier(subjects ...string) frontier {
	f := make(frontier, len(subjects))
	for _, s := range subjects {
		f[s] = struct{}{}
	}
	return f
}

// outgoingMatches reports whether any subject reached by walking the link
// forward from subject matches the link target
func (e *Executor) outgoingMatches(subject string, link *LinkQuery) (bool, error) {
	var reached frontier
	var err error
	if link.Level == 0 {
		reached, err = e.walkPathOut(subject, link.Segments())
	} else {
		reached, err = e.closureOut(subject, link.Level)
	}
	if err != nil {
		return false, err
	}
	return e.anyMatchesTarget(reached, link.Target)
}

// incomingMatches reports whether any subject reached by walking the link in
// reverse from subject matches the link target
func (e *Executor) incomingMatches(subject string, link *LinkQuery) (bool, error) {
	var reached frontier
	var err error
	if link.Level == 0 {
		segments := link.Segments()
		reverse(segments)
		reached, err = e.walkPathIn(subject, segments)
	} else {
		reached, err = e.closureIn(subject, link.Level)
	}
	if err != nil {
		return false, err
	}
	return e.anyMatchesTarget(reached, link.Target)
}

// walkPathOut follows the predicate sequence forward, replacing the frontier
// at each step with the id-objects one segment away
func (e *Executor) walkPathOut(subject string, segments []string) (frontier, error) {
	current := newFrontier(subject)
	for _, segment := range segments {
		next := make(frontier)
		for node := range current {
			it, err := e.graph.SP(node, segment)
			if err != nil {
				return nil, err
			}
			err = drain(it, func(t *hexa.Triple) {
				if t.Object.IsID {
					next[t.Object.Raw] = struct{}{}
				}
			})
			if err != nil {
				return nil, err
			}
		}
		if len(next) == 0 {
			return next, nil
		}
		current = next
	}
	return current, nil
}

// walkPathIn follows the reversed predicate sequence against edge direction:
// at each step the frontier becomes the subjects pointing at it
func (e *Executor) walkPathIn(subject string, segments []string) (frontier, error) {
	current := newFrontier(subject)
	for _, segment := range segments {
		next := make(frontier)
		for node := range current {
			it, err := e.graph.PO(segment, hexa.NewID(node), nil)
			if err != nil {
				return nil, err
			}
			err = drain(it, func(t *hexa.Triple) {
				if t.Object.IsID {
					next[t.Subject] = struct{}{}
				}
			})
			if err != nil {
				return nil, err
			}
		}
		if len(next) == 0 {
			return next, nil
		}
		current = next
	}
	return current, nil
}

// closureOut computes the set of subjects reachable over outgoing id-edges
// within level hops, the source included at depth zero.
// Frontier dedup per expansion keeps cycles from looping.
func (e *Executor) closureOut(subject string, level int) (frontier, error) {
	reached := newFrontier(subject)
	current := newFrontier(subject)

	for depth := 0; depth < level && len(current) > 0; depth++ {
		next := make(frontier)
		for node := range current {
			it, err := e.graph.S(node)
			if err != nil {
				return nil, err
			}
			err = drain(it, func(t *hexa.Triple) {
				if !t.Object.IsID {
					return
				}
				if _, seen := reached[t.Object.Raw]; seen {
					return
				}
				next[t.Object.Raw] = struct{}{}
				reached[t.Object.Raw] = struct{}{}
			})
			if err != nil {
				return nil, err
			}
		}
		current = next
	}
	return reached, nil
}

// closureIn computes the set of subjects that reach subject over id-edges
// within level hops, the source included at depth zero
func (e *Executor) closureIn(subject string, level int) (frontier, error) {
	reached := newFrontier(subject)
	current := newFrontier(subject)

	for depth := 0; depth < level && len(current) > 0; depth++ {
		next := make(frontier)
		for node := range current {
			it, err := e.graph.O(hexa.NewID(node))
			if err != nil {
				return nil, err
			}
			err = drain(it, func(t *hexa.Triple) {
				if !t.Object.IsID {
					return
				}
				if _, seen := reached[t.Subject]; seen {
					return
				}
				next[t.Subject] = struct{}{}
				reached[t.Subject] = struct{}{}
			})
			if err != nil {
				return nil, err
			}
		}
		current = next
	}
	return reached, nil
}

// anyMatchesTarget reports whether any reached subject matches the target
// model under the subject-matching rules of the filter stages
func (e *Executor) anyMatchesTarget(reached frontier, target *ObjectQueryModel) (bool, error) {
	for node := range reached {
		ok, err := e.matchesModel(node, target)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// matchesModel checks one subject against a target model: an id
// short-circuits to equality, otherwise every filter entry must hold
func (e *Executor) matchesModel(subject string, m *ObjectQueryModel) (bool, error) {
	if m.ID != "" {
		return subject == m.ID, nil
	}

	for predicate, unit := range m.Filter {
		value := hexa.FromRaw(unit.Value)

		if unit.Operator == OpEq {
			ok, err := e.graph.Exists(subject, predicate, value)
			if err != nil || !ok {
				return false, err
			}
			continue
		}

		keep, err := comparatorKeep(unit.Operator, value)
		if err != nil {
			return false, err
		}
		ok, err := e.subjectHasMatch(subject, predicate, keep)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// drain consumes an iterator, invoking fn per decoded triple, and closes it
func drain(it store.TripleIterator, fn func(*hexa.Triple)) error {
	defer it.Close()
	for it.Next() {
		t, err := it.Triple()
		if err != nil {
			return err
		}
		fn(t)
	}
	return nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
