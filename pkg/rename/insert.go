package rename

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/headline/pkg/frontmatter"
)

// headingPlaceholderRe matches a line that is only a heading marker with no
// text, the residue templates commonly leave behind.
var headingPlaceholderRe = regexp.MustCompile(`^(#{1,6})\s*$`)

// insertion is the planned edit for writing a title into a note.
type insertion struct {
	// title and prefix are the bare inputs the plan was built from, kept so
	// the storage fallback can replan against content that changed after
	// planning without compounding markers.
	title  string
	prefix string

	// content is the full note content after the edit.
	content string

	// titleLine is the exact line carrying the title (heading marker
	// included when one applies); the verify loop compares against it.
	titleLine string

	// line is the zero-based line index the title lands on.
	line int

	// editorCh is the column at which an editor insert places text, and
	// editorText what it inserts there. For a fresh line this is column 0
	// and the line plus newline; for a heading placeholder the text is
	// appended after the marker.
	editorCh   int
	editorText string
}

// planInsertion decides where and how a title goes into content. It returns
// OutcomeSkippedNonEmpty when the note already has real content after its
// frontmatter — existing content is never overwritten. A line holding only a
// heading marker counts as empty: the title is appended to it instead of
// inserted on a new line, and the placeholder's own marker wins over any
// configured prefix. The prefix applies only when a fresh line is created.
func planInsertion(content, title, prefix string) (insertion, Outcome) {
	bodyOffset := 0
	bodyLine := 0
	head := ""
	if block, ok := frontmatter.Detect(content); ok {
		bodyOffset = block.BodyOffset
		bodyLine = block.LineCount
		head = content[:block.BodyOffset]
	}
	body := content[bodyOffset:]

	// Find the first non-blank body line.
	offset := 0
	line := bodyLine
	for offset < len(body) {
		end := len(body)
		if nl := strings.IndexByte(body[offset:], '\n'); nl >= 0 {
			end = offset + nl
		}
		text := strings.TrimRight(body[offset:end], "\r")

		if strings.TrimSpace(text) != "" {
			if marker := headingPlaceholderRe.FindStringSubmatch(text); marker != nil {
				// Empty heading placeholder: complete it in place.
				titleLine := marker[1] + " " + title
				rest := ""
				if end < len(body) {
					rest = body[end:]
				} else {
					rest = "\n"
				}
				return insertion{
					title:      title,
					prefix:     prefix,
					content:    head + body[:offset] + titleLine + rest,
					titleLine:  titleLine,
					line:       line,
					editorCh:   len([]rune(text)),
					editorText: completePlaceholder(text, title),
				}, OutcomeInserted
			}
			return insertion{}, OutcomeSkippedNonEmpty
		}

		if end == len(body) {
			offset = end
			break
		}
		offset = end + 1
		line++
	}

	// Nothing but blanks after the frontmatter: the title becomes the body,
	// with the configured prefix if any.
	titleLine := applyPrefix(prefix, title)
	return insertion{
		title:      title,
		prefix:     prefix,
		content:    head + titleLine + "\n",
		titleLine:  titleLine,
		line:       bodyLine,
		editorCh:   0,
		editorText: titleLine + "\n",
	}, OutcomeInserted
}

// applyPrefix joins a configured heading prefix and the title with a single
// space, so "# " and "#" configure the same thing.
func applyPrefix(prefix, title string) string {
	if prefix == "" {
		return title
	}
	return strings.TrimRight(prefix, " ") + " " + title
}

// completePlaceholder returns the text an editor inserts at the end of a
// heading placeholder line so the result reads "<marker> <title>".
func completePlaceholder(placeholder, title string) string {
	if strings.HasSuffix(placeholder, " ") {
		return title
	}
	return " " + title
}
