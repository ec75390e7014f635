// Package main provides the ontoshacl binary entry point.
// Ontoshacl generates a SHACL shapes graph from an OWL ontology.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontoshacl/config"
	"github.com/c360studio/ontoshacl/shacl"
)

const appName = "ontoshacl"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate SHACL shapes from OWL ontologies",
		Long: `Ontoshacl reads an OWL ontology and emits a SHACL shapes graph that
validates data conforming to that ontology.

For each owl:Class it generates one sh:NodeShape, with property shapes
derived from owl:Restriction axioms and, optionally, from rdfs:domain
and rdfs:range declarations on the ontology's object properties. Each
property shape carries a generated human-readable sh:message.

Configuration may come from CLI flags, a JSON or YAML config document,
or both; flags take precedence.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(logLevel)

			cfg, err := buildConfig(cmd, configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			if watch {
				return runWatch(cmd.Context(), cfg)
			}
			return runOnce(cfg)
		},
	}

	cmd.Flags().String("src", "", "Path or glob of source ontology documents")
	cmd.Flags().String("uri", "", "IRI of the base ontology")
	cmd.Flags().String("target", "", "Path to write the SHACL shapes graph")
	cmd.Flags().String("namespace", "", "Namespace for the validator ontology")
	cmd.Flags().String("version-iri", "", "Version IRI for the validator ontology (default: namespace + \"1.0.0\")")
	cmd.Flags().String("creator", "", "Creator IRI for the validator ontology")
	cmd.Flags().String("name", "", "Name for the validator ontology")
	cmd.Flags().String("description", "", "Description for the validator ontology")
	cmd.Flags().String("publisher", "", "Publisher IRI for the validator ontology")
	cmd.Flags().String("date-created", "", "Creation date for the validator ontology (YYYY-MM-DD)")
	cmd.Flags().String("base-ontology-prefix", "", "Prefix bound to the base ontology IRI in the output")
	cmd.Flags().Bool("include-domain-range-restrictions", true, "Derive property shapes from rdfs:domain/rdfs:range")
	cmd.Flags().String("domain-range-restriction-severity", string(config.SeverityWarning), "Severity for domain/range shapes (Info, Warning, Violation)")
	cmd.Flags().String("domain-range-overlap", string(config.OverlapSuppress), "Policy for properties with both a restriction and a domain/range declaration (suppress, combine)")
	cmd.Flags().String("format", "turtle", "Output format (turtle, ntriples)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config document")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Regenerate whenever a source document changes")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, shacl.Version)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// buildConfig assembles the effective configuration: defaults, then the
// config document if given, then any explicitly set CLI flags on top.
func buildConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	stringFlags := map[string]*string{
		"src":                  &cfg.SourcePath,
		"uri":                  &cfg.BaseOntologyIRI,
		"target":               &cfg.TargetPath,
		"namespace":            &cfg.ValidatorNamespace,
		"version-iri":          &cfg.VersionIRI,
		"creator":              &cfg.CreatorIRI,
		"name":                 &cfg.Name,
		"description":          &cfg.Description,
		"publisher":            &cfg.PublisherIRI,
		"date-created":         &cfg.DateCreated,
		"base-ontology-prefix": &cfg.BaseOntologyPrefix,
		"format":               &cfg.Format,
	}
	for name, dst := range stringFlags {
		if flags.Changed(name) {
			value, _ := flags.GetString(name)
			*dst = value
		}
	}
	if flags.Changed("include-domain-range-restrictions") {
		include, _ := flags.GetBool("include-domain-range-restrictions")
		cfg.IncludeDomainRangeRestrictions = include
	}
	if flags.Changed("domain-range-restriction-severity") {
		value, _ := flags.GetString("domain-range-restriction-severity")
		severity, err := config.ParseSeverity(value)
		if err != nil {
			return nil, err
		}
		cfg.DomainRangeRestrictionSeverity = severity
	}
	if flags.Changed("domain-range-overlap") {
		value, _ := flags.GetString("domain-range-overlap")
		cfg.DomainRangeOverlap = config.OverlapPolicy(value)
	}
	return cfg, nil
}
