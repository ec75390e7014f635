// Package xsd defines IRI constants for the XML Schema datatype vocabulary.
package xsd

// Namespace is the base IRI prefix for XSD datatypes.
const Namespace = "http://www.w3.org/2001/XMLSchema#"

// Datatype IRIs used in generated graphs.
const (
	// String is the plain string datatype.
	String = Namespace + "string"

	// Integer is the arbitrary-precision integer datatype.
	Integer = Namespace + "integer"

	// NonNegativeInteger is the integer datatype restricted to >= 0.
	NonNegativeInteger = Namespace + "nonNegativeInteger"

	// Decimal is the arbitrary-precision decimal datatype.
	Decimal = Namespace + "decimal"

	// Boolean is the true/false datatype.
	Boolean = Namespace + "boolean"

	// Date is the calendar date datatype.
	Date = Namespace + "date"

	// DateTime is the timestamp datatype.
	DateTime = Namespace + "dateTime"
)
