// Package rdf provides an in-memory RDF graph with Turtle and N-Triples
// codecs. It is deliberately small: just enough triple plumbing for
// ontology queries and deterministic shapes-graph output.
package rdf

import (
	"strings"

	"github.com/google/uuid"
)

// Term is an RDF term: an IRI, a blank node, or a literal.
type Term interface {
	// String returns the term in N-Triples syntax.
	String() string

	// Equal reports whether the other term is identical.
	Equal(other Term) bool
}

// IRI is a named RDF resource.
type IRI struct {
	Value string
}

// NewIRI creates an IRI term.
func NewIRI(value string) IRI {
	return IRI{Value: value}
}

// String returns the IRI in N-Triples syntax.
func (i IRI) String() string {
	return "<" + i.Value + ">"
}

// Equal reports whether the other term is the same IRI.
func (i IRI) Equal(other Term) bool {
	o, ok := other.(IRI)
	return ok && o.Value == i.Value
}

// BlankNode is an anonymous RDF resource.
type BlankNode struct {
	ID string
}

// NewBlankNode mints a blank node with a fresh unique label. Labels are
// internal only: the serializers inline or renumber them, so output never
// depends on the generated value.
func NewBlankNode() BlankNode {
	return BlankNode{ID: "b" + uuid.New().String()}
}

// NewBlankNodeWithID creates a blank node with an explicit label, as read
// from a source document.
func NewBlankNodeWithID(id string) BlankNode {
	return BlankNode{ID: id}
}

// String returns the blank node in N-Triples syntax.
func (b BlankNode) String() string {
	return "_:" + b.ID
}

// Equal reports whether the other term is the same blank node.
func (b BlankNode) Equal(other Term) bool {
	o, ok := other.(BlankNode)
	return ok && o.ID == b.ID
}

// Literal is an RDF literal with an optional datatype or language tag.
type Literal struct {
	Value    string
	Datatype string
	Lang     string
}

// NewLiteral creates a plain string literal.
func NewLiteral(value string) Literal {
	return Literal{Value: value}
}

// NewTypedLiteral creates a literal with a datatype IRI.
func NewTypedLiteral(value, datatype string) Literal {
	return Literal{Value: value, Datatype: datatype}
}

// NewLangLiteral creates a language-tagged string literal.
func NewLangLiteral(value, lang string) Literal {
	return Literal{Value: value, Lang: lang}
}

// String returns the literal in N-Triples syntax.
func (l Literal) String() string {
	s := `"` + escapeLiteral(l.Value) + `"`
	if l.Lang != "" {
		return s + "@" + l.Lang
	}
	if l.Datatype != "" {
		return s + "^^<" + l.Datatype + ">"
	}
	return s
}

// Equal reports whether the other term is an identical literal.
func (l Literal) Equal(other Term) bool {
	o, ok := other.(Literal)
	return ok && o == l
}

// Triple is one RDF statement.
type Triple struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

// escapeLiteral escapes characters that cannot appear raw in a quoted
// Turtle or N-Triples literal.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
