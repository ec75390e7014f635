// Package sdo defines IRI constants for the schema.org vocabulary terms
// used in validator ontology metadata.
package sdo

// Namespace is the base IRI prefix for schema.org terms.
const Namespace = "https://schema.org/"

// Metadata property IRIs.
const (
	// Creator identifies the agent that created the resource.
	Creator = Namespace + "creator"

	// Publisher identifies the agent that published the resource.
	Publisher = Namespace + "publisher"

	// Name is the resource's display name.
	Name = Namespace + "name"

	// Description is the resource's description.
	Description = Namespace + "description"

	// DateCreated is the resource's creation date.
	DateCreated = Namespace + "dateCreated"

	// DateModified is the resource's last modification date.
	DateModified = Namespace + "dateModified"

	// Version is the resource's version designation.
	Version = Namespace + "version"
)
