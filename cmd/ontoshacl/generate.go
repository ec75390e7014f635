package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/ontoshacl/config"
	"github.com/c360studio/ontoshacl/ontology"
	"github.com/c360studio/ontoshacl/rdf"
	"github.com/c360studio/ontoshacl/shacl"
)

// runOnce performs one complete transformation: load sources, generate
// the shapes graph, serialize, write. The target file is only touched
// after the full output graph has been serialized in memory.
func runOnce(cfg *config.Config) error {
	slog.Info("Extracting SHACL rules from OWL ontology", "src", cfg.SourcePath)

	source, err := ontology.LoadGraph(cfg.SourcePath)
	if err != nil {
		return fmt.Errorf("load source ontology: %w", err)
	}

	generator := shacl.NewGenerator(cfg, slog.Default())
	shapes := generator.Generate(source)

	var buf bytes.Buffer
	if err := shapes.Encode(&buf, rdf.Format(cfg.Format)); err != nil {
		return fmt.Errorf("serialize shapes graph: %w", err)
	}
	if err := os.WriteFile(cfg.TargetPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write target: %w", err)
	}

	nodeShapes, propertyShapes := shacl.CountShapes(shapes)
	slog.Info("Generated shapes graph",
		"node_shapes", nodeShapes,
		"property_shapes", propertyShapes,
		"warnings", len(generator.Warnings()),
		"target", cfg.TargetPath)
	return nil
}

// runWatch runs an initial generation and then regenerates whenever a
// matching source document changes, until interrupted.
func runWatch(ctx context.Context, cfg *config.Config) error {
	if err := runOnce(cfg); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories so editor rename-and-replace saves
	// are seen as well.
	files, err := ontology.SourceFiles(cfg.SourcePath)
	if err != nil {
		return err
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	signalCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("Watching source documents", "src", cfg.SourcePath)

	// Editors fire bursts of events per save; collapse them with a
	// short settle delay before regenerating.
	var pending <-chan time.Time
	for {
		select {
		case <-signalCtx.Done():
			slog.Info("Watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if match, _ := doublestarMatch(cfg.SourcePath, event.Name); !match {
				continue
			}
			pending = time.After(200 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		case <-pending:
			pending = nil
			if err := runOnce(cfg); err != nil {
				slog.Error("Regeneration failed", "error", err)
			}
		}
	}
}

// doublestarMatch matches an event path against the source pattern.
func doublestarMatch(pattern, name string) (bool, error) {
	return doublestar.PathMatch(filepath.ToSlash(pattern), filepath.ToSlash(name))
}
