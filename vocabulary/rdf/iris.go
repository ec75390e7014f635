// Package rdf defines IRI constants for the RDF and RDF Schema vocabularies.
package rdf

// Namespace is the base IRI prefix for RDF terms.
const Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// SchemaNamespace is the base IRI prefix for RDF Schema terms.
const SchemaNamespace = "http://www.w3.org/2000/01/rdf-schema#"

// RDF terms.
const (
	// Type asserts that a resource is an instance of a class.
	Type = Namespace + "type"

	// First is the head of an RDF list cell.
	First = Namespace + "first"

	// Rest is the tail of an RDF list cell.
	Rest = Namespace + "rest"

	// Nil terminates an RDF list.
	Nil = Namespace + "nil"
)

// RDF Schema terms.
const (
	// SubClassOf links a class to its superclass expressions.
	SubClassOf = SchemaNamespace + "subClassOf"

	// Domain declares the subject class of a property.
	Domain = SchemaNamespace + "domain"

	// Range declares the object class of a property.
	Range = SchemaNamespace + "range"

	// Label is a human-readable resource name.
	Label = SchemaNamespace + "label"

	// Comment is a human-readable resource description.
	Comment = SchemaNamespace + "comment"

	// IsDefinedBy links a resource to the vocabulary defining it.
	IsDefinedBy = SchemaNamespace + "isDefinedBy"
)
