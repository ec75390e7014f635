package ontology

import (
	"errors"

	"github.com/c360studio/ontoshacl/rdf"
	owlvoc "github.com/c360studio/ontoshacl/vocabulary/owl"
)

// ErrUnsupportedExpression is returned when a class expression node is
// neither a named class nor a union of named classes. Callers skip the
// enclosing restriction; the run continues.
var ErrUnsupportedExpression = errors.New("unsupported class expression")

// Target is a resolved class expression: a single named class, or an
// ordered list of union alternatives. The slice is never empty.
type Target struct {
	Classes []rdf.IRI
}

// Single returns the target class when the expression resolved to one
// named class.
func (t Target) Single() (rdf.IRI, bool) {
	if len(t.Classes) == 1 {
		return t.Classes[0], true
	}
	return rdf.IRI{}, false
}

// ResolveClassExpression normalizes a class-denoting node. Named IRIs
// resolve to a single-class target; blank nodes carrying owl:unionOf
// resolve to the union alternatives in list order.
func (o *Ontology) ResolveClassExpression(node rdf.Term) (Target, error) {
	if iri, ok := node.(rdf.IRI); ok {
		return Target{Classes: []rdf.IRI{iri}}, nil
	}
	bnode, ok := node.(rdf.BlankNode)
	if !ok {
		return Target{}, ErrUnsupportedExpression
	}
	head, ok := o.graph.Value(bnode, rdf.NewIRI(owlvoc.UnionOf))
	if !ok {
		return Target{}, ErrUnsupportedExpression
	}
	items, ok := o.graph.List(head)
	if !ok || len(items) == 0 {
		return Target{}, ErrUnsupportedExpression
	}
	classes := make([]rdf.IRI, 0, len(items))
	for _, item := range items {
		iri, ok := item.(rdf.IRI)
		if !ok {
			// Nested anonymous expressions inside a union are out of scope.
			return Target{}, ErrUnsupportedExpression
		}
		classes = append(classes, iri)
	}
	return Target{Classes: classes}, nil
}
