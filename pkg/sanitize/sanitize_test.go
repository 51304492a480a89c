// Test Type: Unit Test
// Description: Tests for the sanitize package - markup stripping and truncation

package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/headline/pkg/config"
	"github.com/arthur-debert/headline/pkg/sanitize"
)

func allOff() config.StripSettings {
	return config.StripSettings{}
}

func allOn() config.StripSettings {
	return config.Default().Strip
}

func TestSanitize_Transforms(t *testing.T) {
	cases := []struct {
		name  string
		strip config.StripSettings
		in    string
		want  string
	}{
		{"heading_marker", config.StripSettings{Headings: true}, "## My Title", "My Title"},
		{"heading_marker_leaves_tags", config.StripSettings{Headings: true}, "#tag first", "#tag first"},
		{"bold_only_is_independent", config.StripSettings{Bold: true}, "**A** *B* ~~C~~", "A *B* ~~C~~"},
		{"italic", config.StripSettings{Italic: true}, "an *emphasized* word", "an emphasized word"},
		{"strikethrough", config.StripSettings{Strikethrough: true}, "~~gone~~ text", "gone text"},
		{"highlight", config.StripSettings{Highlight: true}, "==marked== text", "marked text"},
		{"wikilink_plain", config.StripSettings{Wikilinks: true}, "see [[Some Note]]", "see Some Note"},
		{"wikilink_alias", config.StripSettings{Wikilinks: true}, "see [[target|shown text]]", "see shown text"},
		{"wikilink_path_keeps_tail", config.StripSettings{Wikilinks: true}, "[[folder/Some Note]]", "Some Note"},
		{"markdown_link", config.StripSettings{MdLinks: true}, "[text](https://x.y) end", "text end"},
		{"markdown_image", config.StripSettings{MdLinks: true}, "![alt](img.png) end", "alt end"},
		{"inline_code", config.StripSettings{Code: true}, "run `go build` now", "run go build now"},
		{"blockquote", config.StripSettings{Blockquotes: true}, "> quoted line", "quoted line"},
		{"callout", config.StripSettings{Blockquotes: true}, "> [!note] important", "important"},
		{"list_marker", config.StripSettings{Lists: true}, "- item one", "item one"},
		{"task_marker", config.StripSettings{Lists: true}, "- [ ] todo item", "todo item"},
		{"ordered_list", config.StripSettings{Lists: true}, "3. third thing", "third thing"},
		{"footnote_ref", config.StripSettings{Footnotes: true}, "claim[^1] here", "claim here"},
		{"footnote_inline", config.StripSettings{Footnotes: true}, "claim^[detail] here", "claimdetail here"},
		{"html_tags", config.StripSettings{HTML: true}, "<b>bold</b> <span class=\"x\">span</span>", "bold span"},
		{"comment_markers_only", config.StripSettings{Comments: true}, "a %%hidden%% b", "a hidden b"},
		{"comment_content_dropped", config.StripSettings{Comments: true, CommentContent: true}, "a %%hidden%% b", "a b"},
		{"html_comment", config.StripSettings{Comments: true, CommentContent: true}, "a <!-- note --> b", "a b"},
		{"table_delimiters", config.StripSettings{Tables: true}, "| cell a | cell b |", "cell a cell b"},
		{"math_inline", config.StripSettings{Math: true}, "value $x+y$ here", "value x+y here"},
		{"math_block", config.StripSettings{Math: true}, "$$e=mc^2$$", "e=mc^2"},
		{"templater_syntax", config.StripSettings{Templates: true}, "<% tp.date.now() %> daily", "daily"},
		{"mustache_syntax", config.StripSettings{Templates: true}, "{{title}} daily", "daily"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := sanitize.New(tc.strip, 0)
			got, err := s.Sanitize(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSanitize_TogglesAreOrthogonal(t *testing.T) {
	t.Run("disabled_transforms_leave_markup", func(t *testing.T) {
		s := sanitize.New(allOff(), 0)

		got, err := s.Sanitize("## **bold** [[link]]")
		require.NoError(t, err)
		assert.Equal(t, "## **bold** [[link]]", got)
	})

	t.Run("full_pipeline", func(t *testing.T) {
		s := sanitize.New(allOn(), 0)

		got, err := s.Sanitize("# **Meeting** notes for [[2024/Projects|the project]]")
		require.NoError(t, err)
		assert.Equal(t, "Meeting notes for the project", got)
	})
}

func TestSanitize_EmptyResult(t *testing.T) {
	t.Run("whitespace_only_reports_no_title", func(t *testing.T) {
		s := sanitize.New(allOn(), 0)

		_, err := s.Sanitize("   ")
		assert.ErrorIs(t, err, sanitize.ErrNoTitle)
	})

	t.Run("markup_only_reports_no_title", func(t *testing.T) {
		s := sanitize.New(allOn(), 0)

		_, err := s.Sanitize("<% tp.file.cursor() %>")
		assert.ErrorIs(t, err, sanitize.ErrNoTitle)
	})
}

func TestTruncate(t *testing.T) {
	t.Run("respects_budget", func(t *testing.T) {
		assert.Equal(t, "abc", sanitize.Truncate("abcdef", 3))
	})

	t.Run("zero_means_unlimited", func(t *testing.T) {
		long := strings.Repeat("x", 500)
		assert.Equal(t, long, sanitize.Truncate(long, 0))
	})

	t.Run("never_splits_grapheme_clusters", func(t *testing.T) {
		// Family emoji: one visual character, many code points.
		family := "\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466"
		title := "hi " + family + family

		got := sanitize.Truncate(title, 4)
		assert.Equal(t, "hi "+family, got)

		// Shortening below the first emoji drops it entirely.
		got = sanitize.Truncate(title, 3)
		assert.Equal(t, "hi", got)
	})

	t.Run("combining_sequence_counts_as_one", func(t *testing.T) {
		// "e" + combining acute accent
		s := "caf" + "é" + "teria"
		assert.Equal(t, "café", sanitize.Truncate(s, 4))
	})
}
