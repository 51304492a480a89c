// Package codec implements the reversible substitution between
// filesystem-forbidden characters and their configured placeholder strings.
//
// Encode turns a human-readable title into a filename-safe string; Decode
// reconstructs the title from a filename. Both are pure functions over a
// fixed, ordered character set so repeated calls are idempotent.
package codec

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/headline/pkg/config"
	"github.com/arthur-debert/headline/pkg/logging"
)

// punctuation is the set of characters that suppress the trailing space a
// trim_right rule would otherwise insert, so "Hello?" does not become
// "Hello ?" in front of pre-existing punctuation.
const punctuation = `.,;:!?'")]}-_`

// rule binds a forbidden character to its configured substitution.
type rule struct {
	original rune
	cfg      config.CharacterRule
}

// Codec performs the bidirectional character mapping.
type Codec struct {
	rules  []rule
	logger zerolog.Logger
}

// New builds a Codec from the replacement settings. The processing order is
// the declaration order of config.Replacements and never changes.
func New(r config.Replacements) *Codec {
	return &Codec{
		rules: []rule{
			{'*', r.Asterisk},
			{'"', r.Quote},
			{'\\', r.Backslash},
			{'/', r.Slash},
			{'<', r.Lt},
			{'>', r.Gt},
			{':', r.Colon},
			{'|', r.Pipe},
			{'?', r.Question},
			{'#', r.Hash},
			{'.', r.Dot},
		},
		logger: logging.GetLogger("codec"),
	}
}

// Encode replaces every forbidden character in title with its configured
// placeholder, producing a filename-safe string. A dot at position 0 is
// always stripped regardless of the dot rule (dotfile convention).
func (c *Codec) Encode(title string) string {
	// Leading dots never survive, enabled rule or not.
	title = strings.TrimLeft(title, ".")

	for _, r := range c.rules {
		if !r.cfg.Enabled {
			continue
		}
		title = encodeRule(title, r)
	}

	return strings.TrimSpace(title)
}

// encodeRule applies a single character rule across the whole string.
func encodeRule(s string, r rule) string {
	if !strings.ContainsRune(s, r.original) {
		return s
	}

	runes := []rune(s)
	var b strings.Builder
	for i, ch := range runes {
		if ch != r.original {
			b.WriteRune(ch)
			continue
		}
		if r.cfg.TrimLeft {
			b.WriteByte(' ')
		}
		b.WriteString(r.cfg.Replacement)
		if r.cfg.TrimRight && !nextIsPunctuation(runes, i) {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func nextIsPunctuation(runes []rune, i int) bool {
	if i+1 >= len(runes) {
		return false
	}
	return strings.ContainsRune(punctuation, runes[i+1])
}

// Decode reconstructs a title from a filename-safe string by reversing every
// enabled, unambiguous rule. A replacement string shared by more than one
// enabled rule cannot be mapped back to a single character and is left
// untouched.
func (c *Codec) Decode(name string) string {
	ambiguous := c.ambiguousReplacements()

	for _, r := range c.rules {
		if !r.cfg.Enabled || r.cfg.Replacement == "" {
			continue
		}
		if ambiguous[r.cfg.Replacement] {
			c.logger.Trace().
				Str("replacement", r.cfg.Replacement).
				Str("char", string(r.original)).
				Msg("skipping ambiguous replacement during decode")
			continue
		}
		name = decodeRule(name, r)
	}

	return name
}

// decodeRule replaces every occurrence of the rule's placeholder with the
// original character, consuming one surrounding inserted space per side
// where the rule's trim flags say one was added.
func decodeRule(s string, r rule) string {
	rep := r.cfg.Replacement
	var b strings.Builder
	for {
		idx := strings.Index(s, rep)
		if idx < 0 {
			b.WriteString(s)
			break
		}

		head := s[:idx]
		tail := s[idx+len(rep):]
		if r.cfg.TrimLeft && strings.HasSuffix(head, " ") {
			head = head[:len(head)-1]
		}
		if r.cfg.TrimRight && strings.HasPrefix(tail, " ") {
			tail = tail[1:]
		}

		b.WriteString(head)
		b.WriteRune(r.original)
		s = tail
	}
	return b.String()
}

// ambiguousReplacements returns the placeholder strings used by more than
// one enabled rule.
func (c *Codec) ambiguousReplacements() map[string]bool {
	seen := map[string]int{}
	for _, r := range c.rules {
		if r.cfg.Enabled && r.cfg.Replacement != "" {
			seen[r.cfg.Replacement]++
		}
	}
	out := map[string]bool{}
	for rep, n := range seen {
		if n > 1 {
			out[rep] = true
		}
	}
	return out
}
