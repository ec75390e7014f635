// Package ontology provides read-only access to a loaded OWL ontology
// graph: class and property enumeration, restriction extraction, and
// class expression resolution.
package ontology

import (
	"log/slog"
	"strings"

	"github.com/c360studio/ontoshacl/rdf"
	owlvoc "github.com/c360studio/ontoshacl/vocabulary/owl"
	rdfvoc "github.com/c360studio/ontoshacl/vocabulary/rdf"
)

// Ontology is a thin query layer over an immutable source graph. Only
// named resources inside the base ontology namespace are reported;
// imported upper-ontology terms stay out of the generated shapes.
type Ontology struct {
	graph  *rdf.Graph
	base   string
	logger *slog.Logger
}

// New creates an ontology accessor for the graph. The base IRI scopes
// which classes and properties belong to the ontology.
func New(graph *rdf.Graph, baseIRI string, logger *slog.Logger) *Ontology {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ontology{graph: graph, base: baseIRI, logger: logger}
}

// Graph returns the underlying source graph.
func (o *Ontology) Graph() *rdf.Graph {
	return o.graph
}

// BaseIRI returns the base ontology IRI.
func (o *Ontology) BaseIRI() string {
	return o.base
}

// Classes returns all named owl:Class subjects declared inside the base
// ontology namespace, in declaration order.
func (o *Ontology) Classes() []rdf.IRI {
	var out []rdf.IRI
	for _, s := range o.graph.Subjects(rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(owlvoc.Class)) {
		iri, ok := s.(rdf.IRI)
		if !ok || !strings.HasPrefix(iri.Value, o.base) {
			continue
		}
		out = append(out, iri)
	}
	return out
}

// IsClass reports whether the term is a named class of this ontology.
func (o *Ontology) IsClass(term rdf.Term) bool {
	iri, ok := term.(rdf.IRI)
	if !ok || !strings.HasPrefix(iri.Value, o.base) {
		return false
	}
	return o.graph.Has(iri, rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(owlvoc.Class))
}

// PropertiesWithDomain returns the ontology's named properties whose
// rdfs:domain directly includes the class, in declaration order.
func (o *Ontology) PropertiesWithDomain(class rdf.IRI) []rdf.IRI {
	var out []rdf.IRI
	for _, s := range o.graph.Subjects(rdf.NewIRI(rdfvoc.Domain), class) {
		iri, ok := s.(rdf.IRI)
		if !ok || !strings.HasPrefix(iri.Value, o.base) {
			continue
		}
		out = append(out, iri)
	}
	return out
}

// RangeClasses returns the property's declared rdfs:range values that
// are named classes of this ontology, in declaration order.
func (o *Ontology) RangeClasses(property rdf.IRI) []rdf.IRI {
	var out []rdf.IRI
	for _, obj := range o.graph.Objects(property, rdf.NewIRI(rdfvoc.Range)) {
		if !o.IsClass(obj) {
			continue
		}
		out = append(out, obj.(rdf.IRI))
	}
	return out
}
