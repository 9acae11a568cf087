package hexa

import "fmt"

// Triple is an immutable subject-predicate-object record
type Triple struct {
	Subject   string
	Predicate string
	Object    Value
}

// NewTriple creates a triple with an explicitly typed object
func NewTriple(subject, predicate string, object Value) *Triple {
	return &Triple{Subject: subject, Predicate: predicate, Object: object}
}

// NewDataTriple creates a triple whose object type is inferred from raw text
func NewDataTriple(subject, predicate, raw string) *Triple {
	return NewTriple(subject, predicate, FromRaw(raw))
}

// NewEdgeTriple creates a triple whose object names another subject
func NewEdgeTriple(subject, predicate, target string) *Triple {
	return NewTriple(subject, predicate, NewID(target))
}

func (t *Triple) String() string {
	if t.Object.IsID {
		return fmt.Sprintf("(%s, %s, ->%s)", t.Subject, t.Predicate, t.Object.Raw)
	}
	return fmt.Sprintf("(%s, %s, %q)", t.Subject, t.Predicate, t.Object.Raw)
}

// Equals reports structural equality of two triples
func (t *Triple) Equals(other *Triple) bool {
	if other == nil {
		return false
	}
	return t.Subject == other.Subject &&
		t.Predicate == other.Predicate &&
		t.Object.Equals(other.Object)
}
