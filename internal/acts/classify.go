// Package acts runs act-by-act story drafting: three acts, each accepting
// drafts, enhancement, research and example requests until the writer
// moves on with "next act".
package acts

import (
	"strconv"
	"strings"
)

// Command is what one input means inside act development.
type Command string

const (
	CmdResearch     Command = "research"
	CmdExamples     Command = "examples"
	CmdUseEnhanced  Command = "use_enhanced"
	CmdKeepOriginal Command = "keep_original"
	CmdDraft        Command = "draft"
	CmdEnhance      Command = "enhance"
	CmdNextAct      Command = "next_act"
	CmdShowScript   Command = "show_script"
	CmdRequest      Command = "request"
	CmdContent      Command = "content"
)

// Input is a classified act-development message.
type Input struct {
	Command Command
	// Arg is the research topic, example concept or draft text.
	Arg string
	// Addition marks draft text that extends the current act.
	Addition bool
}

var exampleTriggers = []string{
	"add example",
	"add some example",
	"can you add example",
	"give me example",
}

var enhanceKeywords = []string{
	"enhance", "improve", "make better", "refine", "polish", "upgrade", "strengthen", "optimize",
}

var additionPrefixes = []string{
	"in addition", "additionally", "furthermore", "moreover", "also", "plus", "and",
}

var requestPrefixes = []string{
	"can you", "could you", "would you", "please", "help me", "what if", "how about",
}

// maxEnhanceCommand is the longest input still read as an enhance
// command rather than draft text.
const maxEnhanceCommand = 100

// Classify decides what input means for act. The first matching rule
// wins.
func Classify(input string, act int) Input {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	if strings.HasPrefix(lower, "research:") {
		return Input{Command: CmdResearch, Arg: strings.TrimSpace(trimmed[len("research:"):])}
	}

	if strings.HasPrefix(lower, "example:") || strings.HasPrefix(lower, "examples:") || containsAny(lower, exampleTriggers) {
		concept := "relevant to Act " + strconv.Itoa(act) + " content"
		if _, after, ok := strings.Cut(trimmed, ":"); ok && strings.TrimSpace(after) != "" {
			concept = strings.TrimSpace(after)
		}
		return Input{Command: CmdExamples, Arg: concept}
	}

	if strings.Contains(lower, "use enhanced") {
		return Input{Command: CmdUseEnhanced}
	}
	if strings.Contains(lower, "keep original") {
		return Input{Command: CmdKeepOriginal}
	}

	if strings.HasPrefix(lower, "draft:") || (strings.HasPrefix(lower, "draft ") && len(trimmed) > 6) {
		text := strings.TrimSpace(trimmed[len("draft"):])
		text = strings.TrimSpace(strings.TrimPrefix(text, ":"))
		return Input{Command: CmdDraft, Arg: text, Addition: isAddition(strings.ToLower(text))}
	}

	if len(trimmed) < maxEnhanceCommand && containsAny(lower, enhanceKeywords) {
		return Input{Command: CmdEnhance}
	}

	if strings.Contains(lower, "next act") {
		return Input{Command: CmdNextAct}
	}
	if strings.Contains(lower, "show script") {
		return Input{Command: CmdShowScript}
	}

	if hasWordPrefix(lower, requestPrefixes) {
		return Input{Command: CmdRequest, Arg: trimmed}
	}
	return Input{Command: CmdContent, Arg: trimmed, Addition: isAddition(lower)}
}

func isAddition(lower string) bool {
	return hasWordPrefix(lower, additionPrefixes)
}

// hasWordPrefix reports whether s starts with one of prefixes followed by
// a word boundary.
func hasWordPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if !strings.HasPrefix(s, p) {
			continue
		}
		if len(s) == len(p) {
			return true
		}
		next := s[len(p)]
		if !(next >= 'a' && next <= 'z' || next >= '0' && next <= '9') {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
