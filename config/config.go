// Package config provides configuration loading and validation for
// ontoshacl. Values may come from a JSON or YAML document, from CLI
// flags, or both; identical values produce identical output either way.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/ontoshacl/vocabulary/shacl"
)

// Severity is the configured severity level for domain/range-derived
// property shapes.
type Severity string

// Recognized severity levels.
const (
	SeverityInfo      Severity = "Info"
	SeverityWarning   Severity = "Warning"
	SeverityViolation Severity = "Violation"
)

// ParseSeverity normalizes a severity string. The "sh:" and "SH."
// prefixes are accepted for compatibility with hand-written configs.
func ParseSeverity(s string) (Severity, error) {
	normalized := strings.TrimPrefix(strings.TrimPrefix(s, "sh:"), "SH.")
	switch strings.ToLower(normalized) {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "violation":
		return SeverityViolation, nil
	}
	return "", fmt.Errorf("unknown severity %q (expected Info, Warning, or Violation)", s)
}

// IRI returns the SHACL severity IRI for the level.
func (s Severity) IRI() string {
	switch s {
	case SeverityInfo:
		return shacl.Info
	case SeverityViolation:
		return shacl.Violation
	}
	return shacl.Warning
}

// OverlapPolicy decides what happens when a class has both an explicit
// restriction on a property and a domain/range declaration for it.
type OverlapPolicy string

const (
	// OverlapSuppress drops the domain/range-derived fragment for
	// properties already covered by an explicit restriction.
	OverlapSuppress OverlapPolicy = "suppress"

	// OverlapCombine emits both fragments side by side.
	OverlapCombine OverlapPolicy = "combine"
)

// Config is the complete ontoshacl configuration.
type Config struct {
	// SourcePath locates the source ontology document. Glob patterns
	// are accepted; all matching documents are merged into one graph.
	SourcePath string `json:"sourcePath" yaml:"sourcePath"`

	// BaseOntologyIRI is the IRI of the source ontology. Classes and
	// properties outside this namespace are ignored.
	BaseOntologyIRI string `json:"baseOntologyIRI" yaml:"baseOntologyIRI"`

	// TargetPath is where the shapes graph is written.
	TargetPath string `json:"targetPath" yaml:"targetPath"`

	// ValidatorNamespace is the namespace of the generated validator
	// ontology; shape IRIs are minted inside it.
	ValidatorNamespace string `json:"validatorNamespace" yaml:"validatorNamespace"`

	// VersionIRI identifies the validator version. Empty defaults to
	// ValidatorNamespace + "1.0.0"; a bare string is resolved inside
	// the validator namespace.
	VersionIRI string `json:"versionIRI" yaml:"versionIRI"`

	// CreatorIRI identifies the validator's creator.
	CreatorIRI string `json:"creatorIRI" yaml:"creatorIRI"`

	// Name is the validator's display name.
	Name string `json:"name" yaml:"name"`

	// Description is the validator's description.
	Description string `json:"description" yaml:"description"`

	// PublisherIRI identifies the validator's publisher.
	PublisherIRI string `json:"publisherIRI" yaml:"publisherIRI"`

	// DateCreated is the validator's creation date (YYYY-MM-DD).
	// Empty defaults to the generation date.
	DateCreated string `json:"dateCreated" yaml:"dateCreated"`

	// BaseOntologyPrefix is bound to the base ontology IRI in the
	// output graph when set.
	BaseOntologyPrefix string `json:"baseOntologyPrefix" yaml:"baseOntologyPrefix"`

	// IncludeDomainRangeRestrictions controls whether property shapes
	// are derived from rdfs:domain/rdfs:range declarations.
	IncludeDomainRangeRestrictions bool `json:"includeDomainRangeRestrictions" yaml:"includeDomainRangeRestrictions"`

	// DomainRangeRestrictionSeverity is the severity for domain/range-
	// derived shapes. Restriction-derived shapes are always Violation.
	DomainRangeRestrictionSeverity Severity `json:"domainRangeRestrictionSeverity" yaml:"domainRangeRestrictionSeverity"`

	// DomainRangeOverlap picks the policy for properties covered by
	// both an explicit restriction and a domain/range declaration.
	DomainRangeOverlap OverlapPolicy `json:"domainRangeOverlap" yaml:"domainRangeOverlap"`

	// Format selects the output serialization (turtle or ntriples).
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		IncludeDomainRangeRestrictions: true,
		DomainRangeRestrictionSeverity: SeverityWarning,
		DomainRangeOverlap:             OverlapSuppress,
		Format:                         "turtle",
	}
}

// Validate checks required values and enum fields. It is the fatal
// gate: a validation error aborts the run before any output exists.
func (c *Config) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"sourcePath", c.SourcePath},
		{"baseOntologyIRI", c.BaseOntologyIRI},
		{"targetPath", c.TargetPath},
		{"validatorNamespace", c.ValidatorNamespace},
		{"creatorIRI", c.CreatorIRI},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration values: %s", strings.Join(missing, ", "))
	}

	if _, err := ParseSeverity(string(c.DomainRangeRestrictionSeverity)); err != nil {
		return fmt.Errorf("domainRangeRestrictionSeverity: %w", err)
	}
	switch c.DomainRangeOverlap {
	case OverlapSuppress, OverlapCombine:
	default:
		return fmt.Errorf("domainRangeOverlap: unknown policy %q (expected suppress or combine)", c.DomainRangeOverlap)
	}
	switch c.Format {
	case "turtle", "ntriples":
	default:
		return fmt.Errorf("format: unknown format %q (expected turtle or ntriples)", c.Format)
	}
	if c.DateCreated != "" {
		if _, err := time.Parse("2006-01-02", c.DateCreated); err != nil {
			return fmt.Errorf("dateCreated: %q is not a YYYY-MM-DD date", c.DateCreated)
		}
	}
	return nil
}

// ResolvedVersionIRI returns the effective version IRI: the configured
// absolute IRI, a configured bare version resolved inside the validator
// namespace, or the default namespace + "1.0.0".
func (c *Config) ResolvedVersionIRI() string {
	switch {
	case c.VersionIRI == "":
		return c.ValidatorNamespace + "1.0.0"
	case strings.Contains(c.VersionIRI, "://"):
		return c.VersionIRI
	}
	return c.ValidatorNamespace + c.VersionIRI
}
