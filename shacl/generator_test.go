package shacl_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ontoshacl/config"
	"github.com/c360studio/ontoshacl/rdf"
	"github.com/c360studio/ontoshacl/shacl"
	owlvoc "github.com/c360studio/ontoshacl/vocabulary/owl"
	rdfvoc "github.com/c360studio/ontoshacl/vocabulary/rdf"
	"github.com/c360studio/ontoshacl/vocabulary/sdo"
	shvoc "github.com/c360studio/ontoshacl/vocabulary/shacl"
)

const (
	baseIRI      = "http://example.org/ont/"
	validatorIRI = "http://example.org/validator/"
)

const sourceHeader = `
@prefix : <http://example.org/ont/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
`

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.SourcePath = "ontology.ttl"
	cfg.BaseOntologyIRI = baseIRI
	cfg.TargetPath = "shapes.ttl"
	cfg.ValidatorNamespace = validatorIRI
	cfg.CreatorIRI = "http://example.org/people/alice"
	cfg.BaseOntologyPrefix = "ont"
	return cfg
}

func generate(t *testing.T, cfg *config.Config, doc string) (*rdf.Graph, *shacl.Generator) {
	t.Helper()
	source, err := rdf.Decode(strings.NewReader(sourceHeader + doc))
	require.NoError(t, err)

	gen := shacl.NewGenerator(cfg, nil)
	gen.Now = func() time.Time {
		return time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)
	}
	return gen.Generate(source), gen
}

// propertyShapes returns the property shape nodes attached to the node
// shape for the class name, in emission order.
func propertyShapes(t *testing.T, g *rdf.Graph, shapeName string) []rdf.Term {
	t.Helper()
	shape := rdf.NewIRI(validatorIRI + shapeName)
	require.True(t, g.Has(shape, rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(shvoc.NodeShape)),
		"expected node shape %s", shapeName)
	return g.Objects(shape, rdf.NewIRI(shvoc.Property))
}

func TestGenerateQualifiedCardinality(t *testing.T) {
	g, gen := generate(t, testConfig(), `
:Record a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :hasAgent ;
        owl:minQualifiedCardinality "1"^^xsd:nonNegativeInteger ;
        owl:onClass :Agent
    ] .
:Agent a owl:Class .
`)
	require.Empty(t, gen.Warnings())

	shape := rdf.NewIRI(validatorIRI + "RecordShape")
	assert.True(t, g.Has(shape, rdf.NewIRI(shvoc.TargetClass), rdf.NewIRI(baseIRI+"Record")))
	assert.True(t, g.Has(shape, rdf.NewIRI(rdfvoc.IsDefinedBy), rdf.NewIRI(validatorIRI)))

	props := propertyShapes(t, g, "RecordShape")
	require.Len(t, props, 1)
	prop := props[0]

	assert.True(t, g.Has(prop, rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(shvoc.PropertyShape)))
	assert.True(t, g.Has(prop, rdf.NewIRI(shvoc.Path), rdf.NewIRI(baseIRI+"hasAgent")))
	assert.True(t, g.Has(prop, rdf.NewIRI(shvoc.ClassConstraint), rdf.NewIRI(baseIRI+"Agent")))
	assert.True(t, g.Has(prop, rdf.NewIRI(shvoc.Severity), rdf.NewIRI(shvoc.Violation)),
		"restriction-derived shapes are always violations")

	minCount, ok := g.Value(prop, rdf.NewIRI(shvoc.MinCount))
	require.True(t, ok)
	assert.Equal(t, "1", minCount.(rdf.Literal).Value)
	_, hasMax := g.Value(prop, rdf.NewIRI(shvoc.MaxCount))
	assert.False(t, hasMax, "min qualified cardinality should not produce sh:maxCount")

	message, ok := g.Value(prop, rdf.NewIRI(shvoc.Message))
	require.True(t, ok)
	text := message.(rdf.Literal).Value
	assert.Contains(t, text, "A ont:Record must have at least 1 ont:hasAgent statements")
	assert.Contains(t, text, "The object of the ont:hasAgent property on a ont:Record must be a ont:Agent")
}

func TestGenerateExactCardinalityMessage(t *testing.T) {
	g, _ := generate(t, testConfig(), `
:Record a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :id ;
        owl:cardinality "1"^^xsd:nonNegativeInteger
    ] .
`)
	props := propertyShapes(t, g, "RecordShape")
	require.Len(t, props, 1)

	minCount, _ := g.Value(props[0], rdf.NewIRI(shvoc.MinCount))
	maxCount, _ := g.Value(props[0], rdf.NewIRI(shvoc.MaxCount))
	assert.Equal(t, "1", minCount.(rdf.Literal).Value)
	assert.Equal(t, "1", maxCount.(rdf.Literal).Value)

	message, ok := g.Value(props[0], rdf.NewIRI(shvoc.Message))
	require.True(t, ok)
	assert.Contains(t, message.(rdf.Literal).Value, "exactly 1 ont:id statements")
}

func TestGenerateMaxCardinalityMessage(t *testing.T) {
	g, _ := generate(t, testConfig(), `
:Record a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :hasOwner ;
        owl:maxCardinality "2"^^xsd:nonNegativeInteger
    ] .
`)
	props := propertyShapes(t, g, "RecordShape")
	require.Len(t, props, 1)

	message, ok := g.Value(props[0], rdf.NewIRI(shvoc.Message))
	require.True(t, ok)
	assert.Contains(t, message.(rdf.Literal).Value, "must not have more than 2 ont:hasOwner statements")
}

func TestGenerateHasValue(t *testing.T) {
	g, _ := generate(t, testConfig(), `
:Record a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :status ;
        owl:hasValue :Active
    ] .
`)
	props := propertyShapes(t, g, "RecordShape")
	require.Len(t, props, 1)

	assert.True(t, g.Has(props[0], rdf.NewIRI(shvoc.HasValueConstraint), rdf.NewIRI(baseIRI+"Active")))
	message, ok := g.Value(props[0], rdf.NewIRI(shvoc.Message))
	require.True(t, ok)
	assert.Contains(t, message.(rdf.Literal).Value, "must have the value ont:Active")
}

func TestGenerateUnionTarget(t *testing.T) {
	g, _ := generate(t, testConfig(), `
:Record a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :hasAgent ;
        owl:someValuesFrom [ owl:unionOf ( :Person :Organization ) ]
    ] .
:Person a owl:Class .
:Organization a owl:Class .
`)
	props := propertyShapes(t, g, "RecordShape")
	require.Len(t, props, 1)
	prop := props[0]

	_, hasClass := g.Value(prop, rdf.NewIRI(shvoc.ClassConstraint))
	assert.False(t, hasClass, "union targets use sh:or, not a direct sh:class")

	head, ok := g.Value(prop, rdf.NewIRI(shvoc.Or))
	require.True(t, ok)
	alternatives, ok := g.List(head)
	require.True(t, ok)
	require.Len(t, alternatives, 2)

	first, ok := g.Value(alternatives[0], rdf.NewIRI(shvoc.ClassConstraint))
	require.True(t, ok)
	assert.True(t, first.Equal(rdf.NewIRI(baseIRI+"Person")), "union order is preserved")
	second, ok := g.Value(alternatives[1], rdf.NewIRI(shvoc.ClassConstraint))
	require.True(t, ok)
	assert.True(t, second.Equal(rdf.NewIRI(baseIRI+"Organization")))

	message, ok := g.Value(prop, rdf.NewIRI(shvoc.Message))
	require.True(t, ok)
	assert.Contains(t, message.(rdf.Literal).Value, "one of [ont:Person, ont:Organization]")
}

func TestGenerateDomainRangeShapes(t *testing.T) {
	doc := `
:Record a owl:Class .
:Agent a owl:Class .
:hasAgent a owl:ObjectProperty ;
    rdfs:domain :Record ;
    rdfs:range :Agent .
`
	g, _ := generate(t, testConfig(), doc)
	props := propertyShapes(t, g, "RecordShape")
	require.Len(t, props, 1)

	assert.True(t, g.Has(props[0], rdf.NewIRI(shvoc.ClassConstraint), rdf.NewIRI(baseIRI+"Agent")))
	assert.True(t, g.Has(props[0], rdf.NewIRI(shvoc.Severity), rdf.NewIRI(shvoc.Warning)),
		"domain/range shapes default to sh:Warning")

	cfg := testConfig()
	cfg.DomainRangeRestrictionSeverity = config.SeverityInfo
	g, _ = generate(t, cfg, doc)
	props = propertyShapes(t, g, "RecordShape")
	require.Len(t, props, 1)
	assert.True(t, g.Has(props[0], rdf.NewIRI(shvoc.Severity), rdf.NewIRI(shvoc.Info)))
}

func TestGenerateDomainRangeDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.IncludeDomainRangeRestrictions = false

	g, _ := generate(t, cfg, `
:Record a owl:Class .
:Agent a owl:Class .
:hasAgent a owl:ObjectProperty ;
    rdfs:domain :Record ;
    rdfs:range :Agent .
`)
	nodeShapes, propertyShapes := shacl.CountShapes(g)
	assert.Zero(t, nodeShapes, "domain/range was the only source of shapes")
	assert.Zero(t, propertyShapes)
}

func TestGenerateOverlapPolicies(t *testing.T) {
	doc := `
:Record a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :hasAgent ;
        owl:minCardinality "1"^^xsd:nonNegativeInteger
    ] .
:Agent a owl:Class .
:hasAgent a owl:ObjectProperty ;
    rdfs:domain :Record ;
    rdfs:range :Agent .
`

	g, _ := generate(t, testConfig(), doc)
	assert.Len(t, propertyShapes(t, g, "RecordShape"), 1,
		"suppress drops the domain/range fragment for restricted properties")

	cfg := testConfig()
	cfg.DomainRangeOverlap = config.OverlapCombine
	g, _ = generate(t, cfg, doc)
	assert.Len(t, propertyShapes(t, g, "RecordShape"), 2,
		"combine keeps both fragments")
}

func TestGenerateSkipsMalformedRestriction(t *testing.T) {
	g, gen := generate(t, testConfig(), `
:Record a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:someValuesFrom :Agent
    ] ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :hasAgent ;
        owl:minCardinality "1"^^xsd:nonNegativeInteger
    ] .
:Agent a owl:Class .
`)
	require.Len(t, gen.Warnings(), 1, "the malformed restriction is reported")
	assert.Len(t, propertyShapes(t, g, "RecordShape"), 1,
		"the well-formed restriction still produces its shape")
}

func TestGenerateOmitsEmptyShapes(t *testing.T) {
	g, _ := generate(t, testConfig(), `
:Record a owl:Class .
:Bare a owl:Class .
`)
	assert.False(t, g.Has(rdf.NewIRI(validatorIRI+"RecordShape"), rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(shvoc.NodeShape)))
	assert.False(t, g.Has(rdf.NewIRI(validatorIRI+"BareShape"), rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(shvoc.NodeShape)))
}

func TestGenerateIgnoresForeignClasses(t *testing.T) {
	g, _ := generate(t, testConfig(), `
@prefix other: <http://other.org/> .
other:External a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty other:p ;
        owl:minCardinality "1"^^xsd:nonNegativeInteger
    ] .
`)
	nodeShapes, _ := shacl.CountShapes(g)
	assert.Zero(t, nodeShapes, "classes outside the base namespace are out of scope")
}

func TestGenerateHashNamespaceShapeNames(t *testing.T) {
	cfg := testConfig()
	cfg.BaseOntologyIRI = "http://example.org/ont#"

	source, err := rdf.Decode(strings.NewReader(`
@prefix : <http://example.org/ont#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
:Record a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :id ;
        owl:minCardinality "1"^^xsd:nonNegativeInteger
    ] .
`))
	require.NoError(t, err)

	g := shacl.NewGenerator(cfg, nil).Generate(source)
	assert.True(t, g.Has(rdf.NewIRI(validatorIRI+"RecordShape"), rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(shvoc.NodeShape)),
		"shape names come from the IRI fragment")
}

func TestGenerateMetadata(t *testing.T) {
	cfg := testConfig()
	cfg.DateCreated = "2024-01-15"
	cfg.VersionIRI = "2.0.0"
	cfg.Name = "Example Validator"
	cfg.PublisherIRI = "http://example.org/org"

	g, _ := generate(t, cfg, `:Record a owl:Class .`)
	id := rdf.NewIRI(validatorIRI)

	assert.True(t, g.Has(id, rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(owlvoc.Ontology)))
	assert.True(t, g.Has(id, rdf.NewIRI(owlvoc.VersionIRI), rdf.NewIRI(validatorIRI+"2.0.0")))
	assert.True(t, g.Has(id, rdf.NewIRI(sdo.Creator), rdf.NewIRI(cfg.CreatorIRI)))
	assert.True(t, g.Has(id, rdf.NewIRI(sdo.Publisher), rdf.NewIRI("http://example.org/org")))

	created, ok := g.Value(id, rdf.NewIRI(sdo.DateCreated))
	require.True(t, ok)
	assert.Equal(t, "2024-01-15", created.(rdf.Literal).Value)

	modified, ok := g.Value(id, rdf.NewIRI(sdo.DateModified))
	require.True(t, ok)
	assert.Equal(t, "2026-08-24", modified.(rdf.Literal).Value, "modified date comes from the pinned clock")

	name, ok := g.Value(id, rdf.NewIRI(sdo.Name))
	require.True(t, ok)
	assert.Equal(t, "Example Validator", name.(rdf.Literal).Value)

	info, ok := g.Value(id, rdf.NewIRI(owlvoc.VersionInfo))
	require.True(t, ok)
	assert.Contains(t, info.(rdf.Literal).Value, "Generated by ontoshacl v"+shacl.Version)
}

func TestGenerateMetadataDefaults(t *testing.T) {
	g, _ := generate(t, testConfig(), `:Record a owl:Class .`)
	id := rdf.NewIRI(validatorIRI)

	created, ok := g.Value(id, rdf.NewIRI(sdo.DateCreated))
	require.True(t, ok)
	assert.Equal(t, "2026-08-24", created.(rdf.Literal).Value, "creation date defaults to the generation date")

	name, ok := g.Value(id, rdf.NewIRI(sdo.Name))
	require.True(t, ok)
	assert.Contains(t, name.(rdf.Literal).Value, baseIRI)

	_, hasPublisher := g.Value(id, rdf.NewIRI(sdo.Publisher))
	assert.False(t, hasPublisher, "publisher is omitted when unconfigured")
}

func TestGenerateDeterministic(t *testing.T) {
	doc := `
:Record a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :hasAgent ;
        owl:someValuesFrom [ owl:unionOf ( :Person :Organization ) ]
    ] .
:Person a owl:Class .
:Organization a owl:Class .
:Agent a owl:Class .
:hasOwner a owl:ObjectProperty ;
    rdfs:domain :Record ;
    rdfs:range :Agent .
`
	var outputs []string
	for i := 0; i < 2; i++ {
		g, _ := generate(t, testConfig(), doc)
		var buf bytes.Buffer
		require.NoError(t, g.Encode(&buf, rdf.FormatTurtle))
		outputs = append(outputs, buf.String())
	}
	assert.Equal(t, outputs[0], outputs[1],
		"identical source and configuration must serialize identically")
}

func TestCountShapes(t *testing.T) {
	g, _ := generate(t, testConfig(), `
:Record a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :id ;
        owl:minCardinality "1"^^xsd:nonNegativeInteger
    ] ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :status ;
        owl:hasValue :Active
    ] .
:Agent a owl:Class ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :name ;
        owl:minCardinality "1"^^xsd:nonNegativeInteger
    ] .
`)
	nodeShapes, propertyShapes := shacl.CountShapes(g)
	assert.Equal(t, 2, nodeShapes)
	assert.Equal(t, 3, propertyShapes)
}
