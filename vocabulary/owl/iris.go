// Package owl defines IRI constants for the Web Ontology Language vocabulary.
package owl

// Namespace is the base IRI prefix for OWL terms.
const Namespace = "http://www.w3.org/2002/07/owl#"

// Class IRIs.
const (
	// Class is the type of a named or anonymous OWL class.
	Class = Namespace + "Class"

	// ObjectProperty is the type of an object-valued property.
	ObjectProperty = Namespace + "ObjectProperty"

	// DatatypeProperty is the type of a literal-valued property.
	DatatypeProperty = Namespace + "DatatypeProperty"

	// Restriction is the type of an anonymous property restriction.
	Restriction = Namespace + "Restriction"

	// Ontology is the type of an ontology resource.
	Ontology = Namespace + "Ontology"
)

// Restriction predicate IRIs.
const (
	// OnProperty names the property a restriction constrains.
	OnProperty = Namespace + "onProperty"

	// OnClass qualifies a cardinality restriction with a target class.
	OnClass = Namespace + "onClass"

	// SomeValuesFrom declares an existential restriction.
	SomeValuesFrom = Namespace + "someValuesFrom"

	// AllValuesFrom declares a universal restriction.
	AllValuesFrom = Namespace + "allValuesFrom"

	// HasValue declares a specific-value restriction.
	HasValue = Namespace + "hasValue"

	// MinCardinality is an unqualified lower cardinality bound.
	MinCardinality = Namespace + "minCardinality"

	// MaxCardinality is an unqualified upper cardinality bound.
	MaxCardinality = Namespace + "maxCardinality"

	// Cardinality is an unqualified exact cardinality bound.
	Cardinality = Namespace + "cardinality"

	// MinQualifiedCardinality is a class-qualified lower cardinality bound.
	MinQualifiedCardinality = Namespace + "minQualifiedCardinality"

	// MaxQualifiedCardinality is a class-qualified upper cardinality bound.
	MaxQualifiedCardinality = Namespace + "maxQualifiedCardinality"

	// QualifiedCardinality is a class-qualified exact cardinality bound.
	QualifiedCardinality = Namespace + "qualifiedCardinality"
)

// Class expression and axiom IRIs.
const (
	// UnionOf links an anonymous class to an RDF list of alternatives.
	UnionOf = Namespace + "unionOf"

	// IntersectionOf links an anonymous class to an RDF list of conjuncts.
	IntersectionOf = Namespace + "intersectionOf"

	// EquivalentClass links a class to an equivalent class expression.
	EquivalentClass = Namespace + "equivalentClass"

	// VersionIRI identifies a specific version of an ontology.
	VersionIRI = Namespace + "versionIRI"

	// VersionInfo is a human-readable version note.
	VersionInfo = Namespace + "versionInfo"

	// Imports links an ontology to an imported ontology.
	Imports = Namespace + "imports"
)
