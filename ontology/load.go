package ontology

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/ontoshacl/rdf"
)

// LoadGraph reads the ontology documents matching the path or glob
// pattern and merges them into one graph. Matches are loaded in sorted
// path order so repeated runs see the same graph.
func LoadGraph(pattern string) (*rdf.Graph, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid source pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no source documents match %q", pattern)
	}
	sort.Strings(matches)

	graph := rdf.NewGraph()
	for _, path := range matches {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		doc, err := rdf.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		graph.Merge(doc)
	}
	return graph, nil
}

// SourceFiles returns the files matching the source pattern, for watch
// mode to register with the file watcher.
func SourceFiles(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid source pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}
