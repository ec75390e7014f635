package ontology

import (
	"strconv"

	"github.com/c360studio/ontoshacl/rdf"
	owlvoc "github.com/c360studio/ontoshacl/vocabulary/owl"
	rdfvoc "github.com/c360studio/ontoshacl/vocabulary/rdf"
)

// Kind identifies the OWL restriction pattern a record was decoded from.
type Kind string

// Recognized restriction kinds, in decode priority order.
const (
	KindSomeValuesFrom          Kind = "someValuesFrom"
	KindAllValuesFrom           Kind = "allValuesFrom"
	KindHasValue                Kind = "hasValue"
	KindMinQualifiedCardinality Kind = "minQualifiedCardinality"
	KindMaxQualifiedCardinality Kind = "maxQualifiedCardinality"
	KindQualifiedCardinality    Kind = "qualifiedCardinality"
	KindMinCardinality          Kind = "minCardinality"
	KindMaxCardinality          Kind = "maxCardinality"
	KindCardinality             Kind = "cardinality"
)

// Qualified reports whether the kind carries an onClass qualification.
func (k Kind) Qualified() bool {
	switch k {
	case KindMinQualifiedCardinality, KindMaxQualifiedCardinality, KindQualifiedCardinality:
		return true
	}
	return false
}

// Restriction is the normalized decoding of one OWL restriction node.
// Exactly one of ValueClass, Value, or Bound is primary for the kind;
// qualified cardinality kinds carry both Bound and ValueClass.
type Restriction struct {
	// Property is the constrained property.
	Property rdf.IRI

	// Kind is the recognized restriction pattern.
	Kind Kind

	// ValueClass is the resolved target for *ValuesFrom and qualified
	// cardinality kinds.
	ValueClass *Target

	// Value is the required value for hasValue restrictions.
	Value rdf.Term

	// Bound is the cardinality bound for cardinality kinds.
	Bound int
}

// Warning records a recoverable skip during extraction, with enough
// context to locate the offending triples in the source.
type Warning struct {
	Class    rdf.IRI
	Property rdf.IRI
	Reason   string
}

// Restrictions returns the restriction records reachable from the class
// through its direct and transitive rdfs:subClassOf and
// owl:equivalentClass axioms. Malformed or unsupported restriction nodes
// are skipped and reported as warnings; unrecognized axiom shapes are
// ignored silently.
func (o *Ontology) Restrictions(class rdf.IRI) ([]Restriction, []Warning) {
	var (
		records  []Restriction
		warnings []Warning
		visited  = map[string]bool{class.Value: true}
	)
	o.collectRestrictions(class, class, visited, &records, &warnings)
	return records, warnings
}

// collectRestrictions walks the superclass expressions of current,
// decoding anonymous restriction nodes and recursing through named
// superclasses. The owning class is kept for warning context.
func (o *Ontology) collectRestrictions(owner, current rdf.IRI, visited map[string]bool, records *[]Restriction, warnings *[]Warning) {
	exprs := o.graph.Objects(current, rdf.NewIRI(rdfvoc.SubClassOf))
	exprs = append(exprs, o.graph.Objects(current, rdf.NewIRI(owlvoc.EquivalentClass))...)

	for _, expr := range exprs {
		switch node := expr.(type) {
		case rdf.IRI:
			if visited[node.Value] {
				continue
			}
			visited[node.Value] = true
			o.collectRestrictions(owner, node, visited, records, warnings)
		case rdf.BlankNode:
			record, warning, ok := o.decodeRestriction(owner, node)
			if warning != nil {
				*warnings = append(*warnings, *warning)
			}
			if ok {
				*records = append(*records, record)
			}
		}
	}
}

// decodeRestriction attempts each known restriction pattern in priority
// order and returns a typed record, a warning for malformed restriction
// nodes, or neither for non-restriction expressions and unrecognized
// axiom shapes.
func (o *Ontology) decodeRestriction(owner rdf.IRI, node rdf.BlankNode) (Restriction, *Warning, bool) {
	if !o.isRestrictionNode(node) {
		// An anonymous superclass need not be a restriction at all;
		// other class expressions are ignored here.
		o.logger.Debug("non-restriction superclass expression ignored", "class", owner.Value)
		return Restriction{}, nil, false
	}

	propTerm, ok := o.graph.Value(node, rdf.NewIRI(owlvoc.OnProperty))
	if !ok {
		o.logger.Warn("restriction without owl:onProperty skipped", "class", owner.Value)
		return Restriction{}, &Warning{Class: owner, Reason: "restriction missing owl:onProperty"}, false
	}
	property, ok := propTerm.(rdf.IRI)
	if !ok {
		o.logger.Warn("restriction with non-IRI owl:onProperty skipped", "class", owner.Value)
		return Restriction{}, &Warning{Class: owner, Reason: "owl:onProperty is not an IRI"}, false
	}

	for _, pattern := range restrictionPatterns {
		value, ok := o.graph.Value(node, rdf.NewIRI(pattern.predicate))
		if !ok {
			continue
		}
		record := Restriction{Property: property, Kind: pattern.kind}
		switch {
		case pattern.kind == KindHasValue:
			record.Value = value
		case pattern.kind == KindSomeValuesFrom || pattern.kind == KindAllValuesFrom:
			target, err := o.ResolveClassExpression(value)
			if err != nil {
				o.logger.Warn("unsupported class expression in restriction skipped",
					"class", owner.Value, "property", property.Value, "kind", string(pattern.kind))
				return Restriction{}, &Warning{Class: owner, Property: property, Reason: "unsupported class expression"}, false
			}
			record.ValueClass = &target
		default:
			bound, err := parseBound(value)
			if err != nil {
				o.logger.Warn("malformed cardinality literal skipped",
					"class", owner.Value, "property", property.Value, "kind", string(pattern.kind), "error", err)
				return Restriction{}, &Warning{Class: owner, Property: property, Reason: "malformed cardinality literal"}, false
			}
			record.Bound = bound
			if pattern.kind.Qualified() {
				onClass, ok := o.graph.Value(node, rdf.NewIRI(owlvoc.OnClass))
				if !ok {
					o.logger.Warn("qualified cardinality without owl:onClass skipped",
						"class", owner.Value, "property", property.Value, "kind", string(pattern.kind))
					return Restriction{}, &Warning{Class: owner, Property: property, Reason: "qualified cardinality missing owl:onClass"}, false
				}
				target, err := o.ResolveClassExpression(onClass)
				if err != nil {
					o.logger.Warn("unsupported owl:onClass expression skipped",
						"class", owner.Value, "property", property.Value, "kind", string(pattern.kind))
					return Restriction{}, &Warning{Class: owner, Property: property, Reason: "unsupported class expression"}, false
				}
				record.ValueClass = &target
			}
		}
		return record, nil, true
	}

	// Unknown axiom shape: ignored by policy, not an error.
	o.logger.Debug("unrecognized restriction pattern ignored",
		"class", owner.Value, "property", property.Value)
	return Restriction{}, nil, false
}

// isRestrictionNode reports whether the blank node is an OWL restriction:
// explicitly typed owl:Restriction, or carrying owl:onProperty or a
// recognized restriction predicate.
func (o *Ontology) isRestrictionNode(node rdf.BlankNode) bool {
	if o.graph.Has(node, rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(owlvoc.Restriction)) {
		return true
	}
	if _, ok := o.graph.Value(node, rdf.NewIRI(owlvoc.OnProperty)); ok {
		return true
	}
	for _, pattern := range restrictionPatterns {
		if _, ok := o.graph.Value(node, rdf.NewIRI(pattern.predicate)); ok {
			return true
		}
	}
	return false
}

var restrictionPatterns = []struct {
	predicate string
	kind      Kind
}{
	{owlvoc.SomeValuesFrom, KindSomeValuesFrom},
	{owlvoc.AllValuesFrom, KindAllValuesFrom},
	{owlvoc.HasValue, KindHasValue},
	{owlvoc.MinQualifiedCardinality, KindMinQualifiedCardinality},
	{owlvoc.MaxQualifiedCardinality, KindMaxQualifiedCardinality},
	{owlvoc.QualifiedCardinality, KindQualifiedCardinality},
	{owlvoc.MinCardinality, KindMinCardinality},
	{owlvoc.MaxCardinality, KindMaxCardinality},
	{owlvoc.Cardinality, KindCardinality},
}

// parseBound decodes a cardinality literal into a non-negative integer.
func parseBound(term rdf.Term) (int, error) {
	lit, ok := term.(rdf.Literal)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.Atoi(lit.Value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
