// Package frontmatter detects and parses the YAML metadata block at the top
// of a note.
//
// A block is recognized only when the very first line of content is exactly
// the "---" delimiter and a matching delimiter line occurs later on its own
// line. Stray delimiter text anywhere else is ordinary content. Malformed
// YAML inside a recognized block is treated as "no metadata", never as an
// error: scope evaluation must keep working on broken notes.
package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/headline/pkg/logging"
)

// Delimiter is the frontmatter fence line.
const Delimiter = "---"

// Block describes a detected frontmatter block.
type Block struct {
	// Inner is the raw YAML text between the delimiter lines.
	Inner string

	// BodyOffset is the byte offset of the first character after the
	// closing delimiter line (the start of the note body).
	BodyOffset int

	// LineCount is the number of lines the block spans, delimiters
	// included. Editor positions for the body start at this line.
	LineCount int
}

// Detect reports whether content starts with a frontmatter block.
func Detect(content string) (Block, bool) {
	firstEnd := strings.IndexByte(content, '\n')
	if firstEnd < 0 {
		return Block{}, false
	}
	if strings.TrimRight(content[:firstEnd], "\r") != Delimiter {
		return Block{}, false
	}

	innerStart := firstEnd + 1
	pos := innerStart
	lines := 1
	for pos <= len(content) {
		var line string
		next := len(content)
		if nl := strings.IndexByte(content[pos:], '\n'); nl >= 0 {
			line = content[pos : pos+nl]
			next = pos + nl + 1
		} else {
			line = content[pos:]
		}
		lines++

		if strings.TrimRight(line, "\r") == Delimiter {
			return Block{
				Inner:      content[innerStart:pos],
				BodyOffset: next,
				LineCount:  lines,
			}, true
		}
		if next >= len(content) {
			break
		}
		pos = next
	}

	return Block{}, false
}

// Property is a single frontmatter entry. Scalar values have one element in
// Values; list values keep all elements.
type Property struct {
	Key    string // original casing
	Values []string
	IsList bool
}

// Properties is the parsed frontmatter, with case-insensitive key lookup.
type Properties struct {
	props map[string]Property
	order []string
}

// Get looks up a property by key, case-insensitively.
func (p Properties) Get(key string) (Property, bool) {
	prop, ok := p.props[strings.ToLower(key)]
	return prop, ok
}

// Len returns the number of properties.
func (p Properties) Len() int {
	return len(p.props)
}

// Keys returns the property keys in document order, original casing.
func (p Properties) Keys() []string {
	return p.order
}

// Tags returns the values of the "tags" (or "tag") property, leading '#'
// stripped.
func (p Properties) Tags() []string {
	var out []string
	for _, key := range []string{"tags", "tag"} {
		prop, ok := p.Get(key)
		if !ok {
			continue
		}
		for _, v := range prop.Values {
			for _, tag := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
				out = append(out, strings.TrimPrefix(tag, "#"))
			}
		}
	}
	return out
}

// Parse extracts the properties from a note's frontmatter. Content without a
// frontmatter block, or with YAML that does not parse, yields empty
// properties. Decoding goes through yaml.Node so key order is the document's,
// not a map iteration's.
func Parse(content string) Properties {
	block, ok := Detect(content)
	if !ok {
		return Properties{}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block.Inner), &doc); err != nil {
		logger := logging.GetLogger("frontmatter")
		logger.Debug().Err(err).Msg("unparsable frontmatter treated as empty")
		return Properties{}
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return Properties{}
	}

	mapping := doc.Content[0]
	props := Properties{props: make(map[string]Property, len(mapping.Content)/2)}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value

		var val interface{}
		if err := mapping.Content[i+1].Decode(&val); err != nil {
			continue
		}

		prop := Property{Key: key}
		switch v := val.(type) {
		case nil:
			prop.Values = []string{""}
		case []interface{}:
			prop.IsList = true
			for _, item := range v {
				prop.Values = append(prop.Values, scalarString(item))
			}
		default:
			prop.Values = []string{scalarString(v)}
		}

		lower := strings.ToLower(key)
		if _, dup := props.props[lower]; !dup {
			props.order = append(props.order, key)
		}
		props.props[lower] = prop
	}
	return props
}

func scalarString(v interface{}) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// bodyTagRe matches #tag tokens at a word boundary. Tag characters follow
// the usual nested-tag convention (letters, digits, -, _, /).
var bodyTagRe = regexp.MustCompile(`(?:^|[\s(])#([\p{L}\p{N}_/-]+)`)

// BodyTags returns the inline #tags found in the note body (the text after
// any frontmatter block).
func BodyTags(content string) []string {
	body := content
	if block, ok := Detect(content); ok {
		if block.BodyOffset <= len(content) {
			body = content[block.BodyOffset:]
		} else {
			body = ""
		}
	}

	matches := bodyTagRe.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
