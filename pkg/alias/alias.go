// Package alias mirrors a note's raw first line into a frontmatter property
// when title derivation lost information (truncation or character
// substitution). The mirror lets search and link completion still find the
// note under its original wording.
//
// Property edits are surgical: only the alias key's lines inside the
// frontmatter block are touched, every other line survives byte-for-byte.
package alias

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/headline/pkg/config"
	"github.com/arthur-debert/headline/pkg/frontmatter"
	"github.com/arthur-debert/headline/pkg/logging"
	"github.com/arthur-debert/headline/pkg/vault"
)

// Synchronizer keeps the alias property in sync with the derived title.
type Synchronizer struct {
	cfg     config.AliasSettings
	storage vault.Storage
	logger  zerolog.Logger
}

// New creates a Synchronizer.
func New(cfg config.AliasSettings, storage vault.Storage) *Synchronizer {
	return &Synchronizer{
		cfg:     cfg,
		storage: storage,
		logger:  logging.GetLogger("alias.synchronizer"),
	}
}

// Sync writes firstLine into the configured property. No write happens when
// mirroring is disabled, or when the only-when-differs policy is on and the
// computed title equals the first line. An empty value removes an existing
// property instead of setting it to empty under the keep-empty-off policy.
func (s *Synchronizer) Sync(note vault.Note, computedTitle, firstLine string) error {
	if !s.cfg.Enabled || s.cfg.Property == "" {
		return nil
	}
	if s.cfg.OnlyWhenDiffers && computedTitle == firstLine {
		s.logger.Trace().Str("note", note.Path).Msg("title equals first line, no alias write")
		return nil
	}

	value := strings.TrimSpace(firstLine)
	if value == "" && s.cfg.KeepEmptyOff {
		return s.storage.Write(note, func(content string) string {
			return RemoveProperty(content, s.cfg.Property)
		})
	}

	s.logger.Debug().Str("note", note.Path).Str("alias", value).Msg("mirroring first line into alias property")
	return s.storage.Write(note, func(content string) string {
		return UpsertProperty(content, s.cfg.Property, value)
	})
}

// UpsertProperty sets key to value inside the note's frontmatter, creating
// the block when the note has none. Unrelated properties are not disturbed.
func UpsertProperty(content, key, value string) string {
	block, ok := frontmatter.Detect(content)
	if !ok {
		return fmt.Sprintf("%s\n%s: %s\n%s\n", frontmatter.Delimiter, key, quoteIfNeeded(value), frontmatter.Delimiter) + content
	}

	entry := fmt.Sprintf("%s: %s\n", key, quoteIfNeeded(value))
	inner, replaced := replacePropertyLines(block.Inner, key, entry)
	if !replaced {
		inner = inner + entry
	}

	return frontmatter.Delimiter + "\n" + inner + frontmatter.Delimiter + "\n" + content[block.BodyOffset:]
}

// RemoveProperty deletes key (and its continuation lines) from the note's
// frontmatter. Content without the property is returned unchanged.
func RemoveProperty(content, key string) string {
	block, ok := frontmatter.Detect(content)
	if !ok {
		return content
	}

	inner, replaced := replacePropertyLines(block.Inner, key, "")
	if !replaced {
		return content
	}

	return frontmatter.Delimiter + "\n" + inner + frontmatter.Delimiter + "\n" + content[block.BodyOffset:]
}

// replacePropertyLines swaps the lines belonging to key (the "key:" line and
// any indented or list continuation lines) for replacement text, leaving
// every other line untouched.
func replacePropertyLines(inner, key, replacement string) (string, bool) {
	lines := strings.SplitAfter(inner, "\n")
	var b strings.Builder
	replaced := false
	skipping := false

	for _, line := range lines {
		if skipping {
			if isContinuationLine(line) {
				continue
			}
			skipping = false
		}
		if !replaced && isPropertyLine(line, key) {
			b.WriteString(replacement)
			replaced = true
			skipping = true
			continue
		}
		b.WriteString(line)
	}

	return b.String(), replaced
}

func isPropertyLine(line, key string) bool {
	trimmed := strings.TrimRight(line, "\r\n")
	if len(trimmed) == 0 || trimmed[0] == ' ' || trimmed[0] == '\t' {
		return false
	}
	k, _, found := strings.Cut(trimmed, ":")
	return found && strings.EqualFold(strings.TrimSpace(k), key)
}

func isContinuationLine(line string) bool {
	trimmed := strings.TrimRight(line, "\r\n")
	if trimmed == "" {
		return false
	}
	return trimmed[0] == ' ' || trimmed[0] == '\t' || strings.HasPrefix(trimmed, "- ")
}

// quoteIfNeeded wraps values that YAML would otherwise reinterpret.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}
	if strings.ContainsAny(v, ":#[]{}\"'") || strings.HasPrefix(v, "- ") {
		return fmt.Sprintf("%q", v)
	}
	return v
}
