package parser

import (
	"strings"
)

// Act is one section of a parsed story outline.
type Act struct {
	Name  string
	Beats []string
}

// Story is the structure recovered from a story outline.
type Story struct {
	Acts        []Act
	Beats       []string
	Transitions []string
	Examples    []string
}

var actMarkers = []struct {
	markers []string
	name    string
}{
	{[]string{"Act 1", "Setup"}, "Setup"},
	{[]string{"Act 2", "Development"}, "Development"},
	{[]string{"Act 3", "Resolution"}, "Resolution"},
}

// ParseStory extracts acts, beats, transitions and examples in one pass.
// Numbered or bulleted lines are beats and attach to the current act.
func ParseStory(text string) Story {
	var s Story
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if name, ok := actHeading(line); ok {
			s.Acts = append(s.Acts, Act{Name: name})
		} else if isBeat(line) {
			beat := strings.TrimSpace(strings.TrimLeft(line, "0123456789.-•*) "))
			beat = strings.ReplaceAll(beat, "**", "")
			if beat != "" {
				s.Beats = append(s.Beats, beat)
				if len(s.Acts) > 0 {
					s.Acts[len(s.Acts)-1].Beats = append(s.Acts[len(s.Acts)-1].Beats, beat)
				}
			}
		}

		lower := strings.ToLower(line)
		if strings.Contains(lower, "transition") {
			s.Transitions = append(s.Transitions, line)
		}
		if strings.Contains(lower, "example") || strings.Contains(lower, "case") {
			s.Examples = append(s.Examples, line)
		}
	}
	return s
}

func actHeading(line string) (string, bool) {
	for _, a := range actMarkers {
		for _, m := range a.markers {
			if strings.Contains(line, m) {
				return a.name, true
			}
		}
	}
	return "", false
}

func isBeat(line string) bool {
	r := line[0]
	return (r >= '0' && r <= '9') || r == '-' || r == '*' || strings.HasPrefix(line, "•")
}
