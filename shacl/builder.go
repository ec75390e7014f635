// Package shacl generates a SHACL shapes graph from an OWL ontology:
// one node shape per class, with property shapes derived from OWL
// restrictions and rdfs:domain/rdfs:range declarations.
package shacl

import (
	"fmt"
	"strings"

	"github.com/c360studio/ontoshacl/ontology"
	"github.com/c360studio/ontoshacl/rdf"
	rdfvoc "github.com/c360studio/ontoshacl/vocabulary/rdf"
	shvoc "github.com/c360studio/ontoshacl/vocabulary/shacl"
	"github.com/c360studio/ontoshacl/vocabulary/xsd"
)

// Fragment is one SHACL property shape before emission: a path, its
// constraint components, a synthesized message, and a severity IRI.
type Fragment struct {
	Path     rdf.IRI
	Target   *ontology.Target
	HasValue rdf.Term
	MinCount *int
	MaxCount *int
	Severity string
	Message  string
}

// builder turns normalized restriction records and domain/range
// declarations into property-shape fragments. It holds the output graph
// only to render compact names in messages.
type builder struct {
	out                 *rdf.Graph
	domainRangeSeverity string
}

// fromRestriction builds the fragment for one restriction record.
// Restriction-derived shapes always carry sh:Violation severity.
func (b *builder) fromRestriction(class rdf.IRI, r ontology.Restriction) Fragment {
	f := Fragment{Path: r.Property, Severity: shvoc.Violation}
	switch r.Kind {
	case ontology.KindSomeValuesFrom, ontology.KindAllValuesFrom:
		// Existential and universal restrictions both map to class
		// membership of the property's values.
		f.Target = r.ValueClass
	case ontology.KindHasValue:
		f.HasValue = r.Value
	case ontology.KindMinCardinality:
		f.MinCount = intPtr(r.Bound)
	case ontology.KindMaxCardinality:
		f.MaxCount = intPtr(r.Bound)
	case ontology.KindCardinality:
		f.MinCount = intPtr(r.Bound)
		f.MaxCount = intPtr(r.Bound)
	case ontology.KindMinQualifiedCardinality:
		f.MinCount = intPtr(r.Bound)
		f.Target = r.ValueClass
	case ontology.KindMaxQualifiedCardinality:
		f.MaxCount = intPtr(r.Bound)
		f.Target = r.ValueClass
	case ontology.KindQualifiedCardinality:
		f.MinCount = intPtr(r.Bound)
		f.MaxCount = intPtr(r.Bound)
		f.Target = r.ValueClass
	}
	f.Message = b.message(class, f)
	return f
}

// fromDomainRange builds the fragment for a property whose rdfs:domain
// includes the class. Returns false when the property has no declared
// range classes, in which case there is no constraint to express.
func (b *builder) fromDomainRange(class, property rdf.IRI, ranges []rdf.IRI) (Fragment, bool) {
	if len(ranges) == 0 {
		return Fragment{}, false
	}
	f := Fragment{
		Path:     property,
		Target:   &ontology.Target{Classes: ranges},
		Severity: b.domainRangeSeverity,
	}
	f.Message = b.message(class, f)
	return f, true
}

// emit writes the fragment as a sh:PropertyShape blank node attached to
// the node shape.
func (b *builder) emit(shape rdf.IRI, f Fragment) {
	node := rdf.NewBlankNode()
	b.out.Add(shape, rdf.NewIRI(shvoc.Property), node)
	b.out.Add(node, rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(shvoc.PropertyShape))
	b.out.Add(node, rdf.NewIRI(shvoc.Path), f.Path)
	b.out.Add(node, rdf.NewIRI(shvoc.Severity), rdf.NewIRI(f.Severity))

	if f.Target != nil {
		if single, ok := f.Target.Single(); ok {
			b.out.Add(node, rdf.NewIRI(shvoc.ClassConstraint), single)
		} else {
			alternatives := make([]rdf.Term, 0, len(f.Target.Classes))
			for _, alt := range f.Target.Classes {
				altNode := rdf.NewBlankNode()
				b.out.Add(altNode, rdf.NewIRI(shvoc.ClassConstraint), alt)
				alternatives = append(alternatives, altNode)
			}
			b.out.Add(node, rdf.NewIRI(shvoc.Or), b.out.NewList(alternatives))
		}
	}
	if f.HasValue != nil {
		b.out.Add(node, rdf.NewIRI(shvoc.HasValueConstraint), f.HasValue)
	}
	if f.MinCount != nil {
		b.out.Add(node, rdf.NewIRI(shvoc.MinCount), rdf.NewTypedLiteral(fmt.Sprintf("%d", *f.MinCount), xsd.Integer))
	}
	if f.MaxCount != nil {
		b.out.Add(node, rdf.NewIRI(shvoc.MaxCount), rdf.NewTypedLiteral(fmt.Sprintf("%d", *f.MaxCount), xsd.Integer))
	}
	if f.Message != "" {
		b.out.Add(node, rdf.NewIRI(shvoc.Message), rdf.NewLiteral(f.Message))
	}
}

// message synthesizes the human-readable sh:message for a fragment so a
// validation-report consumer can read the failure without consulting
// the ontology. Names are rendered compactly when a prefix is bound.
func (b *builder) message(class rdf.IRI, f Fragment) string {
	classStr := b.out.Compact(class.Value)
	pathStr := b.out.Compact(f.Path.Value)

	var sb strings.Builder
	switch {
	case f.MinCount != nil && f.MaxCount != nil:
		if *f.MinCount == *f.MaxCount {
			fmt.Fprintf(&sb, "\n- A %s must be the target of exactly %d %s statements", classStr, *f.MinCount, pathStr)
		} else {
			fmt.Fprintf(&sb, "\n- A %s must have between %d and %d %s statements", classStr, *f.MinCount, *f.MaxCount, pathStr)
		}
	case f.MinCount != nil:
		fmt.Fprintf(&sb, "\n- A %s must have at least %d %s statements", classStr, *f.MinCount, pathStr)
	case f.MaxCount != nil:
		fmt.Fprintf(&sb, "\n- A %s must not have more than %d %s statements", classStr, *f.MaxCount, pathStr)
	}

	if f.Target != nil {
		fmt.Fprintf(&sb, "\n- The object of the %s property on a %s must be ", pathStr, classStr)
		if single, ok := f.Target.Single(); ok {
			fmt.Fprintf(&sb, "a %s", b.out.Compact(single.Value))
		} else {
			names := make([]string, 0, len(f.Target.Classes))
			for _, alt := range f.Target.Classes {
				names = append(names, b.out.Compact(alt.Value))
			}
			fmt.Fprintf(&sb, "one of [%s]", strings.Join(names, ", "))
		}
	}

	if f.HasValue != nil {
		fmt.Fprintf(&sb, "\n- The %s property on a %s must have the value %s", pathStr, classStr, b.renderValue(f.HasValue))
	}
	return sb.String()
}

// renderValue renders a hasValue term for message text.
func (b *builder) renderValue(term rdf.Term) string {
	switch t := term.(type) {
	case rdf.IRI:
		return b.out.Compact(t.Value)
	case rdf.Literal:
		return `"` + t.Value + `"`
	}
	return term.String()
}

func intPtr(n int) *int {
	return &n
}
