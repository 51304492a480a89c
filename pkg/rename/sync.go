package rename

import (
	"strings"

	"github.com/arthur-debert/headline/pkg/frontmatter"
	"github.com/arthur-debert/headline/pkg/sanitize"
	"github.com/arthur-debert/headline/pkg/vault"
)

// SyncResult describes one filename-from-first-line synchronization.
type SyncResult struct {
	Outcome Outcome
	// Note is the note after the operation, carrying the new path when a
	// rename happened.
	Note vault.Note
	// Renamed reports whether the filename actually changed.
	Renamed bool
	// Stem is the filename-safe title the first line derives to.
	Stem string
}

// SyncFilename is the inverse direction of OnNoteCreated: it derives a
// filename-safe title from the note's first content line and renames the
// file when the stem differs. With dryRun the rename is only planned.
func (c *Coordinator) SyncFilename(note vault.Note, dryRun bool) (SyncResult, error) {
	logger := c.logger.With().Str("note", note.Path).Logger()

	if !c.scope.IsInScope(note, nil) {
		return SyncResult{Outcome: OutcomeSkippedExcluded, Note: note}, nil
	}

	content, err := c.storage.Read(note)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read note")
		return SyncResult{Outcome: OutcomeFailed, Note: note}, err
	}

	line, ok := firstContentLine(content)
	if !ok {
		logger.Debug().Msg("note has no content line, keeping filename")
		return SyncResult{Outcome: OutcomeSkippedNonEmpty, Note: note}, nil
	}

	// Derivation: strip markup, truncate on visual characters, then make
	// the result filename-safe.
	title, err := c.sanitize.Sanitize(line)
	if err != nil {
		logger.Debug().Msg("no usable title in first line, keeping filename")
		return SyncResult{Outcome: OutcomeSkippedNonEmpty, Note: note}, nil
	}
	candidate := sanitize.Truncate(title, c.settings.Title.MaxLength)
	stem := c.codec.Encode(candidate)
	if stem == "" {
		return SyncResult{Outcome: OutcomeSkippedNonEmpty, Note: note}, nil
	}

	result := SyncResult{Outcome: OutcomeInserted, Note: note, Stem: stem}
	if stem != note.Stem() {
		result.Renamed = true
		if !dryRun {
			renamed, err := c.storage.Rename(note, stem)
			if err != nil {
				logger.Error().Err(err).Msg("rename failed")
				return SyncResult{Outcome: OutcomeFailed, Note: note}, err
			}
			result.Note = renamed
		}
	}

	if !dryRun {
		if err := c.aliases.Sync(result.Note, stem, title); err != nil {
			logger.Warn().Err(err).Msg("alias sync failed")
		}
	}

	return result, nil
}

// firstContentLine returns the first non-blank line after any frontmatter
// block.
func firstContentLine(content string) (string, bool) {
	body := content
	if block, ok := frontmatter.Detect(content); ok {
		body = content[block.BodyOffset:]
	}
	for _, line := range strings.Split(body, "\n") {
		if trimmed := strings.TrimSpace(strings.TrimRight(line, "\r")); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}
