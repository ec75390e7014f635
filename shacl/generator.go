package shacl

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/c360studio/ontoshacl/config"
	"github.com/c360studio/ontoshacl/ontology"
	"github.com/c360studio/ontoshacl/rdf"
	owlvoc "github.com/c360studio/ontoshacl/vocabulary/owl"
	rdfvoc "github.com/c360studio/ontoshacl/vocabulary/rdf"
	"github.com/c360studio/ontoshacl/vocabulary/sdo"
	shvoc "github.com/c360studio/ontoshacl/vocabulary/shacl"
	"github.com/c360studio/ontoshacl/vocabulary/xsd"
)

// Version is the generator version recorded in owl:versionInfo.
const Version = "0.1.0"

// Generator builds a SHACL shapes graph from a source ontology graph.
// The transformation is a pure function of the source and configuration;
// the generation date is the only ambient input and can be pinned
// through Now for reproducible output.
type Generator struct {
	cfg    *config.Config
	logger *slog.Logger

	// Now supplies the generation date. Nil means time.Now.
	Now func() time.Time

	warnings []ontology.Warning
}

// NewGenerator creates a generator for the configuration.
func NewGenerator(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cfg: cfg, logger: logger}
}

// Warnings returns the recoverable skips recorded during the last
// Generate call.
func (g *Generator) Warnings() []ontology.Warning {
	return g.warnings
}

// Generate walks every class of the source ontology and returns the
// complete shapes graph: validator metadata plus one node shape per
// class that yields at least one property shape. The source graph is
// never mutated.
func (g *Generator) Generate(source *rdf.Graph) *rdf.Graph {
	g.warnings = nil

	out := rdf.NewGraph()
	out.Bind("", g.cfg.ValidatorNamespace)
	if g.cfg.BaseOntologyPrefix != "" {
		out.Bind(g.cfg.BaseOntologyPrefix, g.cfg.BaseOntologyIRI)
	}
	out.Bind("sh", shvoc.Namespace)
	out.Bind("owl", owlvoc.Namespace)
	out.Bind("rdfs", rdfvoc.SchemaNamespace)
	out.Bind("xsd", xsd.Namespace)
	out.Bind("sdo", sdo.Namespace)

	g.addMetadata(out)

	ont := ontology.New(source, g.cfg.BaseOntologyIRI, g.logger)
	b := &builder{out: out, domainRangeSeverity: g.cfg.DomainRangeRestrictionSeverity.IRI()}

	for _, class := range ont.Classes() {
		g.addNodeShape(out, ont, b, class)
	}
	return out
}

// addNodeShape assembles the node shape for one class. Classes that
// produce no property-shape fragments are omitted from the output.
func (g *Generator) addNodeShape(out *rdf.Graph, ont *ontology.Ontology, b *builder, class rdf.IRI) {
	records, warnings := ont.Restrictions(class)
	g.warnings = append(g.warnings, warnings...)

	restricted := make(map[string]bool, len(records))
	var fragments []Fragment
	for _, r := range records {
		restricted[r.Property.Value] = true
		fragments = append(fragments, b.fromRestriction(class, r))
	}

	if g.cfg.IncludeDomainRangeRestrictions {
		for _, property := range ont.PropertiesWithDomain(class) {
			if g.cfg.DomainRangeOverlap == config.OverlapSuppress && restricted[property.Value] {
				continue
			}
			if f, ok := b.fromDomainRange(class, property, ont.RangeClasses(property)); ok {
				fragments = append(fragments, f)
			}
		}
	}

	if len(fragments) == 0 {
		g.logger.Debug("class yields no property shapes, omitted", "class", class.Value)
		return
	}

	shape := g.shapeIRI(class)
	out.Add(shape, rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(shvoc.NodeShape))
	out.Add(shape, rdf.NewIRI(rdfvoc.IsDefinedBy), rdf.NewIRI(g.cfg.ValidatorNamespace))
	out.Add(shape, rdf.NewIRI(shvoc.TargetClass), class)
	for _, f := range fragments {
		b.emit(shape, f)
	}
}

// shapeIRI mints the node shape IRI inside the validator namespace from
// the class's fragment or last path segment.
func (g *Generator) shapeIRI(class rdf.IRI) rdf.IRI {
	name := class.Value
	if i := strings.LastIndex(name, "#"); i >= 0 {
		name = name[i+1:]
	} else if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return rdf.NewIRI(g.cfg.ValidatorNamespace + name + "Shape")
}

// addMetadata attaches the validator ontology's descriptive triples.
// All values are configuration pass-throughs apart from the defaults
// noted on each field.
func (g *Generator) addMetadata(out *rdf.Graph) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	today := now().Format("2006-01-02")

	id := rdf.NewIRI(g.cfg.ValidatorNamespace)
	versionIRI := g.cfg.ResolvedVersionIRI()

	out.Add(id, rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(owlvoc.Ontology))
	out.Add(id, rdf.NewIRI(owlvoc.VersionIRI), rdf.NewIRI(versionIRI))
	out.Add(id, rdf.NewIRI(owlvoc.VersionInfo),
		rdf.NewLiteral(fmt.Sprintf("%s Generated by ontoshacl v%s", out.Compact(versionIRI), Version)))
	out.Add(id, rdf.NewIRI(sdo.Creator), rdf.NewIRI(g.cfg.CreatorIRI))

	created := g.cfg.DateCreated
	if created == "" {
		created = today
	}
	out.Add(id, rdf.NewIRI(sdo.DateCreated), rdf.NewTypedLiteral(created, xsd.Date))
	out.Add(id, rdf.NewIRI(sdo.DateModified), rdf.NewTypedLiteral(today, xsd.Date))

	description := g.cfg.Description
	if description == "" {
		description = fmt.Sprintf("ontoshacl generated validator for %s", g.cfg.BaseOntologyIRI)
	}
	out.Add(id, rdf.NewIRI(sdo.Description), rdf.NewLiteral(description))

	name := g.cfg.Name
	if name == "" {
		name = fmt.Sprintf("%s Validator", g.cfg.BaseOntologyIRI)
	}
	out.Add(id, rdf.NewIRI(sdo.Name), rdf.NewLiteral(name))

	if g.cfg.PublisherIRI != "" {
		out.Add(id, rdf.NewIRI(sdo.Publisher), rdf.NewIRI(g.cfg.PublisherIRI))
	}
}

// CountShapes reports the number of node shapes and property shapes in
// a generated graph, for run summaries.
func CountShapes(g *rdf.Graph) (nodeShapes, propertyShapes int) {
	nodeShapes = len(g.Subjects(rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(shvoc.NodeShape)))
	propertyShapes = len(g.Subjects(rdf.NewIRI(rdfvoc.Type), rdf.NewIRI(shvoc.PropertyShape)))
	return nodeShapes, propertyShapes
}
