package vault

import (
	"github.com/arthur-debert/headline/pkg/config"
	"github.com/arthur-debert/headline/pkg/frontmatter"
)

// Metadata is the parsed-frontmatter collaborator.
type Metadata interface {
	// Properties returns the note's frontmatter properties. Missing or
	// malformed frontmatter yields empty properties, not an error.
	Properties(note Note) frontmatter.Properties

	// Tags returns the note's tags collected from the given locus.
	Tags(note Note, locus config.TagLocus) []string
}

// storageMetadata derives metadata by reading persisted content.
type storageMetadata struct {
	storage Storage
}

// NewMetadata creates a Metadata that parses persisted note content.
func NewMetadata(storage Storage) Metadata {
	return &storageMetadata{storage: storage}
}

func (m *storageMetadata) Properties(note Note) frontmatter.Properties {
	content, err := m.storage.Read(note)
	if err != nil {
		return frontmatter.Properties{}
	}
	return frontmatter.Parse(content)
}

func (m *storageMetadata) Tags(note Note, locus config.TagLocus) []string {
	content, err := m.storage.Read(note)
	if err != nil {
		return nil
	}
	return ContentTags(content, locus)
}

// ContentTags collects tags from already-loaded content at the given locus.
func ContentTags(content string, locus config.TagLocus) []string {
	var tags []string
	if locus == config.PropertiesAndBody || locus == config.PropertiesOnly {
		tags = append(tags, frontmatter.Parse(content).Tags()...)
	}
	if locus == config.PropertiesAndBody || locus == config.BodyOnly {
		tags = append(tags, frontmatter.BodyTags(content)...)
	}
	return tags
}
