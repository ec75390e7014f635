package rdf

import (
	"sort"

	rdfvoc "github.com/c360studio/ontoshacl/vocabulary/rdf"
)

// Graph is an in-memory set of triples. Insertion order is preserved so
// that queries and serialization are deterministic for a given build
// sequence; duplicate triples are ignored.
type Graph struct {
	triples  []Triple
	seen     map[string]int
	prefixes map[string]string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		seen:     make(map[string]int),
		prefixes: make(map[string]string),
	}
}

// Bind registers a namespace prefix for compact rendering. An empty
// prefix binds the default namespace.
func (g *Graph) Bind(prefix, namespace string) {
	g.prefixes[prefix] = namespace
}

// Prefixes returns the bound prefixes sorted by prefix name.
func (g *Graph) Prefixes() []Prefix {
	out := make([]Prefix, 0, len(g.prefixes))
	for p, ns := range g.prefixes {
		out = append(out, Prefix{Name: p, Namespace: ns})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Prefix is one namespace binding.
type Prefix struct {
	Name      string
	Namespace string
}

// Compact renders an IRI as a prefixed name when a bound namespace
// matches, falling back to the angle-bracketed form. The longest
// matching namespace wins; prefixes bound to the same namespace tie-break
// on the lexicographically smallest prefix so output never depends on
// map iteration order.
func (g *Graph) Compact(iri string) string {
	bestPrefix, bestNS := "", ""
	found := false
	for p, ns := range g.prefixes {
		if len(iri) <= len(ns) || iri[:len(ns)] != ns || !validLocalName(iri[len(ns):]) {
			continue
		}
		if found && (len(ns) < len(bestNS) || (len(ns) == len(bestNS) && p > bestPrefix)) {
			continue
		}
		bestPrefix, bestNS = p, ns
		found = true
	}
	if !found {
		return "<" + iri + ">"
	}
	return bestPrefix + ":" + iri[len(bestNS):]
}

// validLocalName reports whether a string can serve as the local part of
// a prefixed name without escaping.
func validLocalName(local string) bool {
	if local == "" {
		return false
	}
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	// A trailing dot would be parsed as the statement terminator.
	return local[len(local)-1] != '.'
}

// Add inserts a triple, ignoring exact duplicates.
func (g *Graph) Add(subject Term, predicate IRI, object Term) {
	t := Triple{Subject: subject, Predicate: predicate, Object: object}
	key := tripleKey(t)
	if _, ok := g.seen[key]; ok {
		return
	}
	g.seen[key] = len(g.triples)
	g.triples = append(g.triples, t)
}

// Remove deletes a triple if present.
func (g *Graph) Remove(subject Term, predicate IRI, object Term) {
	t := Triple{Subject: subject, Predicate: predicate, Object: object}
	key := tripleKey(t)
	idx, ok := g.seen[key]
	if !ok {
		return
	}
	delete(g.seen, key)
	g.triples = append(g.triples[:idx], g.triples[idx+1:]...)
	for i := idx; i < len(g.triples); i++ {
		g.seen[tripleKey(g.triples[i])] = i
	}
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns the graph's triples in insertion order. The returned
// slice is shared; callers must not mutate it.
func (g *Graph) Triples() []Triple {
	return g.triples
}

// Objects returns all objects of triples matching the subject and
// predicate, in insertion order.
func (g *Graph) Objects(subject Term, predicate IRI) []Term {
	var out []Term
	for _, t := range g.triples {
		if t.Subject.Equal(subject) && t.Predicate.Equal(predicate) {
			out = append(out, t.Object)
		}
	}
	return out
}

// Subjects returns all subjects of triples matching the predicate and
// object, in insertion order.
func (g *Graph) Subjects(predicate IRI, object Term) []Term {
	var out []Term
	for _, t := range g.triples {
		if t.Predicate.Equal(predicate) && t.Object.Equal(object) {
			out = append(out, t.Subject)
		}
	}
	return out
}

// Value returns the first object matching the subject and predicate.
func (g *Graph) Value(subject Term, predicate IRI) (Term, bool) {
	for _, t := range g.triples {
		if t.Subject.Equal(subject) && t.Predicate.Equal(predicate) {
			return t.Object, true
		}
	}
	return nil, false
}

// Has reports whether the exact triple is present.
func (g *Graph) Has(subject Term, predicate IRI, object Term) bool {
	_, ok := g.seen[tripleKey(Triple{Subject: subject, Predicate: predicate, Object: object})]
	return ok
}

// Merge adds every triple and prefix binding from the other graph.
// Existing bindings for the same prefix are overwritten.
func (g *Graph) Merge(other *Graph) {
	for _, t := range other.triples {
		g.Add(t.Subject, t.Predicate, t.Object)
	}
	for p, ns := range other.prefixes {
		g.prefixes[p] = ns
	}
}

// List walks an RDF collection from its head node and returns the items
// in list order. Returns false if the head is not a well-formed list,
// including a cyclic rdf:rest chain.
func (g *Graph) List(head Term) ([]Term, bool) {
	var items []Term
	nilIRI := NewIRI(rdfvoc.Nil)
	visited := make(map[string]bool)
	node := head
	for {
		if node.Equal(nilIRI) {
			return items, true
		}
		key := node.String()
		if visited[key] {
			return nil, false
		}
		visited[key] = true
		first, ok := g.Value(node, NewIRI(rdfvoc.First))
		if !ok {
			return nil, false
		}
		items = append(items, first)
		rest, ok := g.Value(node, NewIRI(rdfvoc.Rest))
		if !ok {
			return nil, false
		}
		node = rest
	}
}

// NewList materializes an RDF collection from the items and returns its
// head node. An empty item slice yields rdf:nil.
func (g *Graph) NewList(items []Term) Term {
	if len(items) == 0 {
		return NewIRI(rdfvoc.Nil)
	}
	head := Term(NewBlankNode())
	node := head
	for i, item := range items {
		g.Add(node, NewIRI(rdfvoc.First), item)
		if i == len(items)-1 {
			g.Add(node, NewIRI(rdfvoc.Rest), NewIRI(rdfvoc.Nil))
		} else {
			next := NewBlankNode()
			g.Add(node, NewIRI(rdfvoc.Rest), next)
			node = next
		}
	}
	return head
}

func tripleKey(t Triple) string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String()
}
