// Package sanitize turns the raw first line of a note into a candidate
// title by stripping configured markup constructs.
//
// Every transform sits behind its own toggle and makes no assumption about
// which other transforms ran: users may enable any subset. The order of
// transforms is fixed so results are deterministic, but each one is written
// to be safe on input the earlier stages never touched.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/arthur-debert/headline/pkg/config"
	"github.com/arthur-debert/headline/pkg/errors"
)

// ErrNoTitle is returned when nothing usable remains after stripping.
var ErrNoTitle = errors.New(errors.ErrNoTitle, "no usable title after sanitizing")

var (
	templateRe  = regexp.MustCompile(`<%.*?%>|{{.*?}}`)
	obsCommentRe = regexp.MustCompile(`%%(.*?)%%`)
	htmlCommentRe = regexp.MustCompile(`<!--(.*?)-->`)
	blockquoteRe = regexp.MustCompile(`^\s*(?:>\s*(?:\[![^\]]*\]\s*)?)+`)
	listRe       = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+(?:\[.\]\s+)?`)
	headingRe    = regexp.MustCompile(`^\s*#{1,6}\s+`)
	wikiAliasRe  = regexp.MustCompile(`\[\[([^\]|]*)\|([^\]]*)\]\]`)
	wikiRe       = regexp.MustCompile(`\[\[([^\]]*)\]\]`)
	mdImageRe    = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	footnoteRefRe    = regexp.MustCompile(`\[\^[^\]]*\]`)
	footnoteInlineRe = regexp.MustCompile(`\^\[([^\]]*)\]`)
	codeRe      = regexp.MustCompile("`+")
	boldRe      = regexp.MustCompile(`\*\*(.*?)\*\*|__(.*?)__`)
	italicRe    = regexp.MustCompile(`\*([^*]+)\*|\b_([^_]+)_\b`)
	strikeRe    = regexp.MustCompile(`~~(.*?)~~`)
	highlightRe = regexp.MustCompile(`==(.*?)==`)
	htmlTagRe   = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	tableRe     = regexp.MustCompile(`\s*\|\s*`)
	mathBlockRe  = regexp.MustCompile(`\$\$([^$]*)\$\$`)
	mathInlineRe = regexp.MustCompile(`\$([^$\s][^$]*)\$`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// Sanitizer applies the configured markup-stripping pipeline.
type Sanitizer struct {
	strip     config.StripSettings
	maxLength int
}

// New builds a Sanitizer. maxLength of zero disables truncation.
func New(strip config.StripSettings, maxLength int) *Sanitizer {
	return &Sanitizer{strip: strip, maxLength: maxLength}
}

// Sanitize transforms a raw first line into a candidate title. It returns
// ErrNoTitle when nothing remains after stripping and trimming, so callers
// never write an empty filename.
func (s *Sanitizer) Sanitize(line string) (string, error) {
	out := line

	if s.strip.Templates {
		out = templateRe.ReplaceAllString(out, "")
	}
	if s.strip.Comments {
		if s.strip.CommentContent {
			out = obsCommentRe.ReplaceAllString(out, "")
			out = htmlCommentRe.ReplaceAllString(out, "")
		} else {
			out = obsCommentRe.ReplaceAllString(out, "$1")
			out = htmlCommentRe.ReplaceAllString(out, "$1")
		}
	}
	if s.strip.Blockquotes {
		out = blockquoteRe.ReplaceAllString(out, "")
	}
	if s.strip.Lists {
		out = listRe.ReplaceAllString(out, "")
	}
	if s.strip.Headings {
		out = headingRe.ReplaceAllString(out, "")
	}
	if s.strip.Wikilinks {
		out = wikiAliasRe.ReplaceAllString(out, "$2")
		out = wikiRe.ReplaceAllStringFunc(out, func(m string) string {
			target := wikiRe.FindStringSubmatch(m)[1]
			// [[folder/Note]] displays as "Note"
			if idx := strings.LastIndexByte(target, '/'); idx >= 0 {
				return target[idx+1:]
			}
			return target
		})
	}
	if s.strip.MdLinks {
		out = mdImageRe.ReplaceAllString(out, "$1")
		out = mdLinkRe.ReplaceAllString(out, "$1")
	}
	if s.strip.Footnotes {
		out = footnoteInlineRe.ReplaceAllString(out, "$1")
		out = footnoteRefRe.ReplaceAllString(out, "")
	}
	if s.strip.Code {
		out = codeRe.ReplaceAllString(out, "")
	}
	if s.strip.Bold {
		out = boldRe.ReplaceAllString(out, "$1$2")
	}
	if s.strip.Italic {
		out = italicRe.ReplaceAllString(out, "$1$2")
	}
	if s.strip.Strikethrough {
		out = strikeRe.ReplaceAllString(out, "$1")
	}
	if s.strip.Highlight {
		out = highlightRe.ReplaceAllString(out, "$1")
	}
	if s.strip.HTML {
		out = htmlTagRe.ReplaceAllString(out, "")
	}
	if s.strip.Tables {
		out = strings.TrimSpace(tableRe.ReplaceAllString(out, " "))
	}
	if s.strip.Math {
		out = mathBlockRe.ReplaceAllString(out, "$1")
		out = mathInlineRe.ReplaceAllString(out, "$1")
	}

	out = strings.TrimSpace(spaceRe.ReplaceAllString(out, " "))
	out = Truncate(out, s.maxLength)

	if out == "" {
		return "", ErrNoTitle
	}
	return out, nil
}

// Truncate shortens s to at most max visual characters. Grapheme clusters
// (emoji sequences, combining marks, surrogate-paired symbols) count as one
// character and are never split. max <= 0 means no limit.
func Truncate(s string, max int) string {
	if max <= 0 || uniseg.GraphemeClusterCount(s) <= max {
		return s
	}

	var b strings.Builder
	gr := uniseg.NewGraphemes(s)
	for i := 0; i < max && gr.Next(); i++ {
		b.WriteString(gr.Str())
	}
	return strings.TrimSpace(b.String())
}
