// Package query implements structured object queries over a graph:
// predicate-value filters, comparator constraints, link traversals, and
// pagination with a triple-valued continuation.
package query

import (
	"errors"
	"sort"
	"strings"

	"github.com/jobeland/hexastore/pkg/hexa"
)

var (
	// ErrAtLeastOneFilter means the query had neither an id nor any filter
	ErrAtLeastOneFilter = errors.New("query requires an id or at least one filter")

	// ErrPathEmpty means a link query had level 0 and an empty path
	ErrPathEmpty = errors.New("link query path is empty")

	// ErrUnknownComparator means the operator is not in the enumerated set
	ErrUnknownComparator = errors.New("unknown comparator")
)

// Operator is a filter comparison operator
type Operator string

const (
	OpEq       Operator = "eq"
	OpGt       Operator = "gt"
	OpGe       Operator = "ge"
	OpLt       Operator = "lt"
	OpLe       Operator = "le"
	OpContains Operator = "contains"
)

// IsValid reports whether the operator is in the enumerated set
func (op Operator) IsValid() bool {
	switch op {
	case OpEq, OpGt, OpGe, OpLt, OpLe, OpContains:
		return true
	default:
		return false
	}
}

// PathDelimiter separates the predicate segments of a link path
const PathDelimiter = "."

// DefaultPageSize is used when a query requests page size 0, unless the
// executor was created with another default
const DefaultPageSize = 100

// QueryUnit is one predicate constraint: an operator and the value to
// compare against
type QueryUnit struct {
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// LinkQuery expresses a graph-traversal constraint.
// Exactly one of Path or Level governs the walk: level 0 follows the
// explicit predicate sequence in Path; level > 0 takes the transitive
// closure of id-edges up to that many hops.
type LinkQuery struct {
	Path   string            `json:"path,omitempty"`
	Level  int               `json:"level,omitempty"`
	Target *ObjectQueryModel `json:"target"`
}

// Segments splits the path into its predicate sequence
func (l *LinkQuery) Segments() []string {
	if l.Path == "" {
		return nil
	}
	return strings.Split(l.Path, PathDelimiter)
}

// ObjectQueryModel describes one structured query over a graph
type ObjectQueryModel struct {
	// ID short-circuits the query to the first triple of a single subject
	ID string `json:"id,omitempty"`

	// Filter maps predicates to constraints; required unless ID is set
	Filter map[string]QueryUnit `json:"filter,omitempty"`

	// HasObject applies link constraints over outgoing edges
	HasObject []LinkQuery `json:"has_object,omitempty"`

	// HasSubject applies link constraints over incoming edges
	HasSubject []LinkQuery `json:"has_subject,omitempty"`

	// PageSize caps the result; 0 means the executor's default page size
	PageSize int `json:"page_size,omitempty"`

	// Continuation resumes after the last triple of a prior page
	Continuation *hexa.Triple `json:"continuation,omitempty"`
}

// Response is one page of query results.
// Continuation is the last triple of a full page, to be passed back to
// resume; nil means the result set is exhausted.
type Response struct {
	Values       []*hexa.Triple `json:"values"`
	Continuation *hexa.Triple   `json:"continuation,omitempty"`
}

// Validate checks the model and its link targets recursively.
// All failures are input-validation errors surfaced before any read.
func (q *ObjectQueryModel) Validate() error {
	if q.ID == "" && len(q.Filter) == 0 {
		return ErrAtLeastOneFilter
	}

	for _, unit := range q.Filter {
		if !unit.Operator.IsValid() {
			return ErrUnknownComparator
		}
	}

	for _, links := range [][]LinkQuery{q.HasObject, q.HasSubject} {
		for _, link := range links {
			if link.Level == 0 && link.Path == "" {
				return ErrPathEmpty
			}
			// A missing target constrains nothing and has neither an
			// id nor a filter
			if link.Target == nil {
				return ErrAtLeastOneFilter
			}
			if err := link.Target.Validate(); err != nil {
				return err
			}
		}
	}

	return nil
}

// seedPredicate picks the filter entry that seeds the scan.
// An eq entry rides the POS index directly and is preferred; ties break on
// predicate order so repeated queries choose the same seed.
func (q *ObjectQueryModel) seedPredicate() string {
	keys := make([]string, 0, len(q.Filter))
	for k := range q.Filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if q.Filter[k].Operator == OpEq {
			return k
		}
	}
	return keys[0]
}
