package config

import "time"

// ScopeStrategy decides whether list membership includes or excludes a note.
type ScopeStrategy string

const (
	// OnlyExclude excludes notes that match a list entry.
	OnlyExclude ScopeStrategy = "only-exclude"
	// ExcludeAllExcept excludes notes that match no list entry.
	ExcludeAllExcept ScopeStrategy = "exclude-all-except"
)

// TagLocus selects where tags are collected from when matching tag rules.
type TagLocus string

const (
	PropertiesAndBody TagLocus = "properties-and-body"
	PropertiesOnly    TagLocus = "properties-only"
	BodyOnly          TagLocus = "body-only"
)

// CharacterRule configures the substitution for one forbidden character.
// TrimLeft/TrimRight insert a space on the corresponding side of the
// replacement during encode; decode consumes those spaces again.
type CharacterRule struct {
	Replacement string `koanf:"replacement" toml:"replacement"`
	Enabled     bool   `koanf:"enabled" toml:"enabled"`
	TrimLeft    bool   `koanf:"trim_left" toml:"trim_left"`
	TrimRight   bool   `koanf:"trim_right" toml:"trim_right"`
}

// Replacements holds one rule per filesystem-forbidden character.
// The struct field order is the codec's processing order.
type Replacements struct {
	Asterisk  CharacterRule `koanf:"asterisk" toml:"asterisk"`   // *
	Quote     CharacterRule `koanf:"quote" toml:"quote"`         // "
	Backslash CharacterRule `koanf:"backslash" toml:"backslash"` // \
	Slash     CharacterRule `koanf:"slash" toml:"slash"`         // /
	Lt        CharacterRule `koanf:"lt" toml:"lt"`               // <
	Gt        CharacterRule `koanf:"gt" toml:"gt"`               // >
	Colon     CharacterRule `koanf:"colon" toml:"colon"`         // :
	Pipe      CharacterRule `koanf:"pipe" toml:"pipe"`           // |
	Question  CharacterRule `koanf:"question" toml:"question"`   // ?
	Hash      CharacterRule `koanf:"hash" toml:"hash"`           // #
	Dot       CharacterRule `koanf:"dot" toml:"dot"`             // . (mid-string; position 0 is always blocked)
}

// TitleSettings controls how the derived title is written back into a note.
type TitleSettings struct {
	HeadingPrefix         string `koanf:"heading_prefix" toml:"heading_prefix"`
	MaxLength             int    `koanf:"max_length" toml:"max_length" validate:"gte=0"`
	MoveCursorToFirstLine bool   `koanf:"move_cursor_to_first_line" toml:"move_cursor_to_first_line"`
	PlaceCursorAtEnd      bool   `koanf:"place_cursor_at_end" toml:"place_cursor_at_end"`
}

// TimingSettings holds the retry and template-wait constants.
type TimingSettings struct {
	RetryCount     int `koanf:"retry_count" toml:"retry_count" validate:"gte=0"`
	RetryDelayMs   int `koanf:"retry_delay_ms" toml:"retry_delay_ms" validate:"gte=0"`
	TemplateWaitMs int `koanf:"template_wait_ms" toml:"template_wait_ms" validate:"gte=0"`
}

// RetryDelay returns the inter-attempt delay as a duration.
func (t TimingSettings) RetryDelay() time.Duration {
	return time.Duration(t.RetryDelayMs) * time.Millisecond
}

// TemplateWait returns the template grace period as a duration.
func (t TimingSettings) TemplateWait() time.Duration {
	return time.Duration(t.TemplateWaitMs) * time.Millisecond
}

// StripSettings toggles the individual markup-stripping transforms.
// Each toggle is orthogonal; any subset may be enabled.
type StripSettings struct {
	Headings       bool `koanf:"headings" toml:"headings"`
	Bold           bool `koanf:"bold" toml:"bold"`
	Italic         bool `koanf:"italic" toml:"italic"`
	Strikethrough  bool `koanf:"strikethrough" toml:"strikethrough"`
	Highlight      bool `koanf:"highlight" toml:"highlight"`
	Wikilinks      bool `koanf:"wikilinks" toml:"wikilinks"`
	MdLinks        bool `koanf:"mdlinks" toml:"mdlinks"`
	Code           bool `koanf:"code" toml:"code"`
	Blockquotes    bool `koanf:"blockquotes" toml:"blockquotes"`
	Lists          bool `koanf:"lists" toml:"lists"`
	Footnotes      bool `koanf:"footnotes" toml:"footnotes"`
	HTML           bool `koanf:"html" toml:"html"`
	Comments       bool `koanf:"comments" toml:"comments"`
	CommentContent bool `koanf:"comment_content" toml:"comment_content"` // drop commented text too, not just markers
	Tables         bool `koanf:"tables" toml:"tables"`
	Math           bool `koanf:"math" toml:"math"`
	Templates      bool `koanf:"templates" toml:"templates"`
}

// FolderScope is the folder exclusion rule set.
type FolderScope struct {
	Strategy ScopeStrategy `koanf:"strategy" toml:"strategy" validate:"oneof=only-exclude exclude-all-except"`
	Paths    []string      `koanf:"paths" toml:"paths"`
}

// TagScope is the tag exclusion rule set.
type TagScope struct {
	Strategy      ScopeStrategy `koanf:"strategy" toml:"strategy" validate:"oneof=only-exclude exclude-all-except"`
	Tags          []string      `koanf:"tags" toml:"tags"`
	Locus         TagLocus      `koanf:"locus" toml:"locus" validate:"oneof=properties-and-body properties-only body-only"`
	MatchChildren bool          `koanf:"match_children" toml:"match_children"`
}

// PropertyRule matches a frontmatter property. An empty Value matches any
// value for the key.
type PropertyRule struct {
	Key   string `koanf:"key" toml:"key"`
	Value string `koanf:"value" toml:"value"`
}

// PropertyScope is the property exclusion rule set.
type PropertyScope struct {
	Strategy ScopeStrategy  `koanf:"strategy" toml:"strategy" validate:"oneof=only-exclude exclude-all-except"`
	Rules    []PropertyRule `koanf:"rules" toml:"rules"`
}

// DisableMarker is the single property that unconditionally opts a note out.
type DisableMarker struct {
	Key   string `koanf:"key" toml:"key"`
	Value string `koanf:"value" toml:"value"`
}

// ScopeSettings groups all exclusion rule sets.
type ScopeSettings struct {
	IncludeSubfolders bool          `koanf:"include_subfolders" toml:"include_subfolders"`
	Folders           FolderScope   `koanf:"folders" toml:"folders"`
	Tags              TagScope      `koanf:"tags" toml:"tags"`
	Properties        PropertyScope `koanf:"properties" toml:"properties"`
	Disable           DisableMarker `koanf:"disable" toml:"disable"`
}

// AliasSettings controls mirroring the first line into a frontmatter property.
type AliasSettings struct {
	Enabled         bool   `koanf:"enabled" toml:"enabled"`
	Property        string `koanf:"property" toml:"property"`
	OnlyWhenDiffers bool   `koanf:"only_when_differs" toml:"only_when_differs"`
	KeepEmptyOff    bool   `koanf:"keep_empty_off" toml:"keep_empty_off"`
}

// Settings is the complete headline configuration.
type Settings struct {
	Title        TitleSettings  `koanf:"title" toml:"title"`
	Timing       TimingSettings `koanf:"timing" toml:"timing"`
	Replacements Replacements   `koanf:"replacements" toml:"replacements"`
	Strip        StripSettings  `koanf:"strip" toml:"strip"`
	Scope        ScopeSettings  `koanf:"scope" toml:"scope"`
	Alias        AliasSettings  `koanf:"alias" toml:"alias"`
}
