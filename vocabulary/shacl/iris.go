// Package shacl defines IRI constants for the Shapes Constraint Language vocabulary.
package shacl

// Namespace is the base IRI prefix for SHACL terms.
const Namespace = "http://www.w3.org/ns/shacl#"

// Shape type IRIs.
const (
	// NodeShape is the type of a shape targeting a class of focus nodes.
	NodeShape = Namespace + "NodeShape"

	// PropertyShape is the type of a shape constraining one property path.
	PropertyShape = Namespace + "PropertyShape"
)

// Shape structure IRIs.
const (
	// TargetClass binds a node shape to the class it validates.
	TargetClass = Namespace + "targetClass"

	// Property links a node shape to one of its property shapes.
	Property = Namespace + "property"

	// Path is the property path a property shape constrains.
	Path = Namespace + "path"
)

// Constraint component IRIs.
const (
	// ClassConstraint requires values to be instances of a class.
	ClassConstraint = Namespace + "class"

	// Or requires values to satisfy at least one alternative shape.
	Or = Namespace + "or"

	// MinCount is the minimum number of values on the path.
	MinCount = Namespace + "minCount"

	// MaxCount is the maximum number of values on the path.
	MaxCount = Namespace + "maxCount"

	// HasValueConstraint requires a specific value on the path.
	HasValueConstraint = Namespace + "hasValue"
)

// Reporting IRIs.
const (
	// Message is the human-readable validation message for a shape.
	Message = Namespace + "message"

	// Severity is the severity assigned to a shape's violations.
	Severity = Namespace + "severity"

	// Info is the informational severity level.
	Info = Namespace + "Info"

	// Warning is the warning severity level.
	Warning = Namespace + "Warning"

	// Violation is the violation severity level.
	Violation = Namespace + "Violation"
)
