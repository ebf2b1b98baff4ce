package router

import (
	"regexp"
	"strconv"
	"strings"
)

// maxSelectionInput is the longest input still read as a choice.
const maxSelectionInput = 50

// maxWordSelection is the longest input where "first" or "two" count.
const maxWordSelection = 20

var selectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`choose option (\d)\b`),
	regexp.MustCompile(`use option (\d)\b`),
	regexp.MustCompile(`select option (\d)\b`),
	regexp.MustCompile(`go with option (\d)\b`),
	regexp.MustCompile(`option (\d)\b`),
	regexp.MustCompile(`^(\d)$`),
	regexp.MustCompile(`option number (\d)\b`),
	regexp.MustCompile(`number (\d)\b`),
	regexp.MustCompile(`#(\d)\b`),
}

var wordSelections = []struct {
	pattern *regexp.Regexp
	n       int
}{
	{regexp.MustCompile(`\b(first|one)\b`), 1},
	{regexp.MustCompile(`\b(second|two)\b`), 2},
	{regexp.MustCompile(`\b(third|three)\b`), 3},
}

// commandPrefixes are never selections even when they mention an option.
// "improve option N" asks for a hook rewrite, like "enhance option N".
var commandPrefixes = []string{"draft:", "draft ", "enhance", "improve option", "research:", "example:"}

// ParseSelection reads an option choice (1 to 3) out of input.
func ParseSelection(input string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" || len(lower) > maxSelectionInput {
		return 0, false
	}
	for _, p := range commandPrefixes {
		if strings.HasPrefix(lower, p) {
			return 0, false
		}
	}

	for _, p := range selectionPatterns {
		m := p.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 3 {
			return n, true
		}
	}

	if len(lower) <= maxWordSelection {
		for _, w := range wordSelections {
			if w.pattern.MatchString(lower) {
				return w.n, true
			}
		}
	}
	return 0, false
}
