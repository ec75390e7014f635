package rdf

import (
	"fmt"
	"io"
	"strings"

	rdfvoc "github.com/c360studio/ontoshacl/vocabulary/rdf"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"
)

// Encode serializes the graph in the given format. Output is
// deterministic: prefixes are sorted, subjects follow insertion order,
// and blank node labels are renumbered in order of first appearance.
func (g *Graph) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTurtle:
		_, err := io.WriteString(w, g.turtle())
		return err
	case FormatNTriples:
		_, err := io.WriteString(w, g.ntriples())
		return err
	}
	return fmt.Errorf("unsupported format: %s", format)
}

// ntriples writes one triple per line with renumbered blank node labels.
func (g *Graph) ntriples() string {
	var sb strings.Builder
	labels := make(map[string]string)
	render := func(t Term) string {
		b, ok := t.(BlankNode)
		if !ok {
			return t.String()
		}
		label, ok := labels[b.ID]
		if !ok {
			label = fmt.Sprintf("_:b%d", len(labels))
			labels[b.ID] = label
		}
		return label
	}
	for _, t := range g.triples {
		sb.WriteString(render(t.Subject))
		sb.WriteString(" ")
		sb.WriteString(t.Predicate.String())
		sb.WriteString(" ")
		sb.WriteString(render(t.Object))
		sb.WriteString(" .\n")
	}
	return sb.String()
}

// turtleWriter carries the state for pretty Turtle serialization.
type turtleWriter struct {
	graph *Graph
	// objectRefs counts how often each blank node appears as an object;
	// single-reference nodes are inlined as [ ... ] blocks.
	objectRefs map[string]int
	// listHeads marks blank nodes that start a well-formed RDF list.
	listHeads map[string]bool
	labels    map[string]string
}

func (g *Graph) turtle() string {
	tw := &turtleWriter{
		graph:      g,
		objectRefs: make(map[string]int),
		listHeads:  make(map[string]bool),
		labels:     make(map[string]string),
	}
	for _, t := range g.triples {
		if b, ok := t.Object.(BlankNode); ok {
			tw.objectRefs[b.ID]++
		}
	}
	for _, t := range g.triples {
		for _, term := range []Term{t.Subject, t.Object} {
			b, ok := term.(BlankNode)
			if !ok || tw.listHeads[b.ID] {
				continue
			}
			if items, ok := g.List(b); ok && len(items) > 0 {
				tw.listHeads[b.ID] = true
			}
		}
	}

	var sb strings.Builder
	for _, p := range g.Prefixes() {
		if p.Name == "" {
			sb.WriteString(fmt.Sprintf("@prefix : <%s> .\n", p.Namespace))
		} else {
			sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", p.Name, p.Namespace))
		}
	}
	if len(g.prefixes) > 0 {
		sb.WriteString("\n")
	}

	for _, subject := range tw.topLevelSubjects() {
		tw.writeSubject(&sb, subject)
		sb.WriteString("\n")
	}
	return sb.String()
}

// topLevelSubjects returns subjects that get their own output block: all
// IRI subjects plus blank nodes that cannot be inlined, in insertion order.
func (tw *turtleWriter) topLevelSubjects() []Term {
	var out []Term
	seen := make(map[string]bool)
	for _, t := range tw.graph.triples {
		key := t.Subject.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		if b, ok := t.Subject.(BlankNode); ok {
			// Inlined as an object block or list, not a top-level subject.
			if tw.objectRefs[b.ID] == 1 || tw.listHeads[b.ID] {
				continue
			}
		}
		out = append(out, t.Subject)
	}
	return out
}

// subjectTriples returns the subject's triples grouped in insertion
// order, skipping the structural list triples of inlined collections.
func (tw *turtleWriter) subjectTriples(subject Term) []Triple {
	var out []Triple
	for _, t := range tw.graph.triples {
		if t.Subject.Equal(subject) {
			out = append(out, t)
		}
	}
	return out
}

func (tw *turtleWriter) writeSubject(sb *strings.Builder, subject Term) {
	sb.WriteString(tw.renderRef(subject))
	sb.WriteString("\n")
	tw.writePredicates(sb, subject, 1)
	sb.WriteString("\n")
}

func (tw *turtleWriter) writePredicates(sb *strings.Builder, subject Term, depth int) {
	indent := strings.Repeat("    ", depth)
	triples := tw.subjectTriples(subject)
	for i, t := range triples {
		sb.WriteString(indent)
		if t.Predicate.Value == rdfvoc.Type {
			sb.WriteString("a ")
		} else {
			sb.WriteString(tw.graph.Compact(t.Predicate.Value))
			sb.WriteString(" ")
		}
		tw.writeObject(sb, t.Object, depth)
		if i < len(triples)-1 {
			sb.WriteString(" ;\n")
		} else if depth == 1 {
			sb.WriteString(" .")
		}
	}
}

func (tw *turtleWriter) writeObject(sb *strings.Builder, object Term, depth int) {
	b, ok := object.(BlankNode)
	if !ok {
		sb.WriteString(tw.renderTerm(object))
		return
	}
	switch {
	case tw.listHeads[b.ID]:
		items, _ := tw.graph.List(b)
		sb.WriteString("(")
		for _, item := range items {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat("    ", depth+1))
			tw.writeObject(sb, item, depth+1)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("    ", depth))
		sb.WriteString(")")
	case tw.objectRefs[b.ID] == 1:
		sb.WriteString("[\n")
		tw.writePredicates(sb, b, depth+1)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("    ", depth))
		sb.WriteString("]")
	default:
		sb.WriteString(tw.renderRef(object))
	}
}

// renderRef renders a subject or multiply-referenced blank node.
func (tw *turtleWriter) renderRef(term Term) string {
	if b, ok := term.(BlankNode); ok {
		label, ok := tw.labels[b.ID]
		if !ok {
			label = fmt.Sprintf("_:b%d", len(tw.labels))
			tw.labels[b.ID] = label
		}
		return label
	}
	return tw.renderTerm(term)
}

// renderTerm renders an IRI or literal with prefix compaction.
func (tw *turtleWriter) renderTerm(term Term) string {
	switch t := term.(type) {
	case IRI:
		return tw.graph.Compact(t.Value)
	case Literal:
		s := `"` + escapeLiteral(t.Value) + `"`
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^" + tw.graph.Compact(t.Datatype)
		}
		return s
	}
	return term.String()
}
