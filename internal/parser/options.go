// Package parser recovers structured options from free-form model output.
//
// Options are extracted by an ordered chain of strategies, each a pure
// function of the raw text. The first strategy that yields anything wins,
// and a last-resort fallback guarantees at least one option for any
// input.
package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sant0-9/hookline/internal/script"
)

// MaxOptions is the most options a single parse returns.
const MaxOptions = 3

// Format describes the block and field vocabulary of one component's output.
type Format struct {
	Name string
	// BlockStart matches a line that opens a block. Group 1 is the number
	// and group 2, when non-empty, is the type label.
	BlockStart *regexp.Regexp
	// TypeStartsBlock treats every Type: line as a new block.
	TypeStartsBlock bool

	TypeFields       []string
	TextFields       []string
	VisualFields     []string
	DurationFields   []string
	SupportingFields []string

	DefaultType string
	Placeholder string
	Fallback    func(typ string) string
}

var HookFormat = Format{
	Name:           "hook",
	BlockStart:     regexp.MustCompile(`(?i)^(?:option|hook)\s+(\d+)\s*[:.)\-]?\s*(.*)$`),
	TypeFields:     []string{"type"},
	TextFields:     []string{"text", "script", "hook"},
	VisualFields:   []string{"visual note", "visual"},
	DurationFields: []string{"duration"},
	DefaultType:    "Hook",
	Placeholder:    "Here's what nobody tells you about this topic.",
	Fallback:       FallbackHook,
}

var CTAFormat = Format{
	Name:             "cta",
	BlockStart:       regexp.MustCompile(`(?i)^(?:option|cta)\s+(\d+)\s*[:.)\-]?\s*(.*)$`),
	TypeStartsBlock:  true,
	TypeFields:       []string{"type"},
	TextFields:       []string{"primary text", "primary", "text", "cta"},
	VisualFields:     []string{"visual elements", "visual"},
	SupportingFields: []string{"supporting text", "supporting"},
	DefaultType:      "Action",
	Placeholder:      "Follow for more.",
	Fallback:         FallbackCTA,
}

// Strategy is one named extraction step.
type Strategy struct {
	Name    string
	Extract func(text string, f Format) []script.Option
}

// Strategies is the extraction chain in priority order.
var Strategies = []Strategy{
	{Name: "structured", Extract: StructuredBlocks},
	{Name: "typed-fallback", Extract: TypedFallback},
	{Name: "quoted", Extract: QuotedSpans},
	{Name: "numbered", Extract: NumberedLines},
}

// Result reports which strategy produced the options.
type Result struct {
	Options  []script.Option
	Strategy string
}

// Parse runs the strategy chain over text.
func Parse(text string, f Format) Result {
	for _, s := range Strategies {
		if opts := s.Extract(text, f); len(opts) > 0 {
			return Result{Options: limit(opts), Strategy: s.Name}
		}
	}
	return Result{Options: limit(LastResort(text, f)), Strategy: "last-resort"}
}

// Options is Parse without the strategy name.
func Options(text string, f Format) []script.Option {
	return Parse(text, f).Options
}

func limit(opts []script.Option) []script.Option {
	if len(opts) > MaxOptions {
		return opts[:MaxOptions]
	}
	return opts
}

type block struct {
	label string
	opt   script.Option
	typed bool
}

// StructuredBlocks extracts options from labelled blocks. It yields
// nothing when a typed block is missing its text, leaving that case to
// TypedFallback so no block is dropped.
func StructuredBlocks(text string, f Format) []script.Option {
	blocks := splitBlocks(text, f)
	var out []script.Option
	for _, b := range blocks {
		if b.opt.Text == "" {
			if b.typed {
				return nil
			}
			continue
		}
		out = append(out, finish(b, f))
	}
	return limit(out)
}

// TypedFallback fills typed blocks that have no text with a canned line
// matching their category.
func TypedFallback(text string, f Format) []script.Option {
	var out []script.Option
	for _, b := range splitBlocks(text, f) {
		if b.opt.Text == "" {
			if !b.typed {
				continue
			}
			b.opt.Text = f.Fallback(typeOf(b))
		}
		out = append(out, finish(b, f))
	}
	return limit(out)
}

func typeOf(b block) string {
	if b.opt.Type != "" {
		return b.opt.Type
	}
	return b.label
}

func finish(b block, f Format) script.Option {
	o := b.opt
	if o.Type == "" {
		o.Type = b.label
	}
	if o.Type == "" {
		o.Type = f.DefaultType
	}
	return o
}

var quotedPattern = regexp.MustCompile(`["“”]([^"“”]{30,300})["“”]`)

// QuotedSpans treats quoted spans of 30 to 300 characters as option text.
func QuotedSpans(text string, f Format) []script.Option {
	var out []script.Option
	for _, m := range quotedPattern.FindAllStringSubmatch(text, -1) {
		span := strings.TrimSpace(m[1])
		lower := strings.ToLower(span)
		if strings.Contains(lower, "visual:") || strings.Contains(lower, "duration:") || strings.Contains(lower, "type") {
			continue
		}
		out = append(out, script.Option{Type: f.DefaultType, Text: span})
		if len(out) == MaxOptions {
			break
		}
	}
	return out
}

var (
	numberedPattern = regexp.MustCompile(`^(?:\d+[.):]|[-*•])\s*`)
	metaMarkers     = []string{"Visual:", "🎬", "⏱️", "Duration:", "Type:"}
)

// NumberedLines keeps numbered or bulleted lines that read like content
// rather than headers or metadata.
func NumberedLines(text string, f Format) []script.Option {
	var out []script.Option
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if containsAny(line, metaMarkers) {
			continue
		}
		if !numberedPattern.MatchString(line) {
			continue
		}
		cleaned := strings.TrimSpace(numberedPattern.ReplaceAllString(line, ""))
		cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "**", ""))
		cleaned = trimQuotes(cleaned)
		if utf8.RuneCountInString(cleaned) <= 20 || strings.HasSuffix(cleaned, ":") {
			continue
		}
		out = append(out, script.Option{Type: f.DefaultType, Text: cleaned})
		if len(out) == MaxOptions {
			break
		}
	}
	return out
}

// LastResort builds one option from the start of the raw text, or the
// format's placeholder when the text is empty.
func LastResort(text string, f Format) []script.Option {
	cleaned := strings.Join(strings.Fields(text), " ")
	if cleaned == "" {
		return []script.Option{{Type: f.DefaultType, Text: f.Placeholder}}
	}
	o := script.Option{Type: f.DefaultType, Text: truncateRunes(cleaned, 100)}
	if f.Name == CTAFormat.Name {
		o.SupportingText = "Take action now"
	}
	return []script.Option{o}
}

func splitBlocks(text string, f Format) []block {
	var blocks []block
	var cur *block
	var lastField *string

	flush := func() {
		if cur != nil {
			blocks = append(blocks, *cur)
		}
		cur = nil
		lastField = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := normalizeLine(raw)
		if line == "" {
			lastField = nil
			continue
		}

		if m := f.BlockStart.FindStringSubmatch(line); m != nil {
			flush()
			label := strings.TrimSpace(strings.Trim(m[2], "-–—*:"))
			cur = &block{label: label, typed: label != ""}
			continue
		}

		name, value, ok := splitField(line)
		// "Text:" followed by "Warning: ..." on the next line is the text,
		// not an unknown field.
		if ok && lastField != nil && *lastField == "" && !f.known(name) {
			ok = false
		}
		if ok && f.TypeStartsBlock && matchField(name, f.TypeFields) {
			if cur == nil || cur.opt.Type != "" {
				flush()
				cur = &block{}
			}
		}
		if cur == nil {
			continue
		}

		if !ok {
			// Continuation of a multi-line field.
			if lastField != nil {
				*lastField = strings.TrimSpace(*lastField + " " + trimQuotes(line))
			}
			continue
		}

		lastField = nil
		switch {
		case matchField(name, f.TypeFields):
			cur.opt.Type = value
			cur.typed = cur.typed || value != ""
		case matchField(name, f.TextFields):
			cur.opt.Text = trimQuotes(value)
			lastField = &cur.opt.Text
		case matchField(name, f.VisualFields):
			cur.opt.Visual = value
			lastField = &cur.opt.Visual
		case matchField(name, f.DurationFields):
			cur.opt.Duration = value
		case matchField(name, f.SupportingFields):
			cur.opt.SupportingText = trimQuotes(value)
			lastField = &cur.opt.SupportingText
		}
	}
	flush()
	return blocks
}

func (f Format) known(name string) bool {
	for _, fields := range [][]string{f.TypeFields, f.TextFields, f.VisualFields, f.DurationFields, f.SupportingFields} {
		if matchField(name, fields) {
			return true
		}
	}
	return false
}

var fieldPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z /]{0,30}):\s*(.*)$`)

func splitField(line string) (name, value string, ok bool) {
	m := fieldPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(m[1])), strings.TrimSpace(m[2]), true
}

func matchField(name string, fields []string) bool {
	for _, f := range fields {
		if name == f {
			return true
		}
	}
	return false
}

// normalizeLine drops markdown emphasis, leading emoji and bullets.
func normalizeLine(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.TrimSpace(s)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '"' && r != '“'
	})
	s = strings.TrimPrefix(s, "#")
	return strings.TrimSpace(s)
}

func trimQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"“”'`))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
