// Package scope decides whether a note is in scope for title processing.
//
// Four rule categories are evaluated independently: the disable marker,
// folders, tags, and properties. Exclusion is conjunctive across categories:
// failing any single category excludes the note, and no category can
// override another. Within a category, the configured strategy decides
// whether list membership includes or excludes.
package scope

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/headline/pkg/config"
	"github.com/arthur-debert/headline/pkg/frontmatter"
	"github.com/arthur-debert/headline/pkg/logging"
	"github.com/arthur-debert/headline/pkg/vault"
)

// Evaluator evaluates the scope rules for notes.
type Evaluator struct {
	cfg      config.ScopeSettings
	metadata vault.Metadata
	logger   zerolog.Logger
}

// New creates an Evaluator. The settings snapshot is taken by value; a
// settings reload means building a new Evaluator.
func New(cfg config.ScopeSettings, metadata vault.Metadata) *Evaluator {
	return &Evaluator{
		cfg:      cfg,
		metadata: metadata,
		logger:   logging.GetLogger("scope.evaluator"),
	}
}

// IsInScope reports whether the note should be processed. content may carry
// a pre-captured snapshot for a live edit not yet flushed to storage; when
// nil, metadata is read through the storage-backed collaborator.
func (e *Evaluator) IsInScope(note vault.Note, content *string) bool {
	props := e.properties(note, content)

	if e.disabledByMarker(props) {
		e.logger.Debug().Str("note", note.Path).Msg("excluded by disable marker")
		return false
	}
	if !e.folderInScope(note) {
		e.logger.Debug().Str("note", note.Path).Msg("excluded by folder rules")
		return false
	}
	if !e.tagsInScope(note, content) {
		e.logger.Debug().Str("note", note.Path).Msg("excluded by tag rules")
		return false
	}
	if !e.propertiesInScope(props) {
		e.logger.Debug().Str("note", note.Path).Msg("excluded by property rules")
		return false
	}
	return true
}

func (e *Evaluator) properties(note vault.Note, content *string) frontmatter.Properties {
	if content != nil {
		return frontmatter.Parse(*content)
	}
	return e.metadata.Properties(note)
}

// disabledByMarker checks the single key/value property that opts a note out
// unconditionally. Both key and value compare case-insensitively.
func (e *Evaluator) disabledByMarker(props frontmatter.Properties) bool {
	marker := e.cfg.Disable
	if marker.Key == "" {
		return false
	}
	prop, ok := props.Get(marker.Key)
	if !ok {
		return false
	}
	for _, v := range prop.Values {
		if strings.EqualFold(v, marker.Value) {
			return true
		}
	}
	return false
}

func (e *Evaluator) folderInScope(note vault.Note) bool {
	rules := e.cfg.Folders
	if len(rules.Paths) == 0 && rules.Strategy == config.OnlyExclude {
		return true
	}

	folder := note.Folder()
	matched := false
	for _, p := range rules.Paths {
		if e.folderMatches(folder, normalizeFolder(p)) {
			matched = true
			break
		}
	}

	return inScopeByStrategy(rules.Strategy, matched)
}

func (e *Evaluator) folderMatches(folder, listed string) bool {
	if folder == listed {
		return true
	}
	if !e.cfg.IncludeSubfolders {
		return false
	}
	if listed == "" {
		// Vault root with subfolder matching covers everything.
		return true
	}
	return strings.HasPrefix(folder, listed+"/")
}

func normalizeFolder(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "." {
		return ""
	}
	return p
}

func (e *Evaluator) tagsInScope(note vault.Note, content *string) bool {
	rules := e.cfg.Tags
	if len(rules.Tags) == 0 && rules.Strategy == config.OnlyExclude {
		return true
	}

	var tags []string
	if content != nil {
		tags = vault.ContentTags(*content, rules.Locus)
	} else {
		tags = e.metadata.Tags(note, rules.Locus)
	}

	// A note with no tags at all can never be in the "except" set.
	if rules.Strategy == config.ExcludeAllExcept && len(tags) == 0 {
		return false
	}

	matched := false
outer:
	for _, tag := range tags {
		tag = strings.TrimPrefix(tag, "#")
		for _, listed := range rules.Tags {
			listed = strings.TrimPrefix(listed, "#")
			if tag == listed || (rules.MatchChildren && strings.HasPrefix(tag, listed+"/")) {
				matched = true
				break outer
			}
		}
	}

	return inScopeByStrategy(rules.Strategy, matched)
}

func (e *Evaluator) propertiesInScope(props frontmatter.Properties) bool {
	rules := e.cfg.Properties
	if len(rules.Rules) == 0 && rules.Strategy == config.OnlyExclude {
		return true
	}

	matched := false
	for _, rule := range rules.Rules {
		if propertyMatches(props, rule) {
			matched = true
			break
		}
	}

	return inScopeByStrategy(rules.Strategy, matched)
}

// propertyMatches implements the key/value match: keys compare
// case-insensitively, an empty rule value matches any value for the key,
// and list-valued properties match if any element matches exactly.
func propertyMatches(props frontmatter.Properties, rule config.PropertyRule) bool {
	prop, ok := props.Get(rule.Key)
	if !ok {
		return false
	}
	if rule.Value == "" {
		return true
	}
	for _, v := range prop.Values {
		if v == rule.Value {
			return true
		}
	}
	return false
}

// inScopeByStrategy translates "did any list entry match" into an in-scope
// decision. Under only-exclude, membership excludes; under
// exclude-all-except, non-membership excludes.
func inScopeByStrategy(strategy config.ScopeStrategy, matched bool) bool {
	if strategy == config.ExcludeAllExcept {
		return matched
	}
	return !matched
}
