package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	durationRangePattern = regexp.MustCompile(`(\d+)(?:-(\d+))?`)
	timingUnitPattern    = regexp.MustCompile(`(\d+(?:-\d+)?\s*(?:seconds?|secs?|minutes?|mins?|s|m))\b`)
	bareNumberPattern    = regexp.MustCompile(`^(\d+)(?:-(\d+))?$`)
	firstIntPattern      = regexp.MustCompile(`\d+`)
	secondsUnitPattern   = regexp.MustCompile(`\s*(?:seconds?|secs?|s)$`)
	minutesUnitPattern   = regexp.MustCompile(`\s*(?:minutes?|mins?|m)$`)
)

// Act proportions of the total runtime.
var actShare = [ActCount]float64{0.2, 0.6, 0.2}

var actFocus = [ActCount]string{
	"Setup and hook - grab attention",
	"Main content - deliver value",
	"Resolution and CTA - drive action",
}

// ActFocus describes what act n should accomplish.
func ActFocus(n int) string {
	if n < 1 || n > ActCount {
		return "Continue the story"
	}
	return actFocus[n-1]
}

// ActDuration returns the share of total belonging to act n. Ranges use
// their midpoint and the result keeps the unit of total.
func ActDuration(total string, act int) string {
	m := durationRangePattern.FindStringSubmatch(total)
	if m == nil {
		return "a few seconds"
	}
	lo, _ := strconv.Atoi(m[1])
	hi := lo
	if m[2] != "" {
		hi, _ = strconv.Atoi(m[2])
	}
	avg := float64(lo+hi) / 2

	share := 0.33
	if act >= 1 && act <= ActCount {
		share = actShare[act-1]
	}
	d := avg * share

	if strings.Contains(strings.ToLower(total), "second") {
		return fmt.Sprintf("%d seconds", int(d))
	}
	if d < 1 {
		return fmt.Sprintf("%d seconds", int(d*60))
	}
	return fmt.Sprintf("%.1f minutes", d)
}

// SuggestedDuration is the range recommended when asking about timing.
func SuggestedDuration(p Platform) string {
	switch p {
	case PlatformTikTok:
		return "15-60 seconds"
	case PlatformInstagram:
		return "30 seconds - 2 minutes"
	case PlatformYouTube:
		return "3-10 minutes"
	case PlatformGeneral:
		return "1-5 minutes"
	}
	return "2-3 minutes"
}

// DefaultDuration is used when the user skips the timing question.
func DefaultDuration(p Platform) string {
	switch p {
	case PlatformTikTok:
		return "30-60 seconds"
	case PlatformInstagram:
		return "1-2 minutes"
	case PlatformYouTube:
		return "5-7 minutes"
	}
	return "2-3 minutes"
}

// DurationChoices are the quick picks offered during onboarding.
func DurationChoices(p Platform) []string {
	switch p {
	case PlatformTikTok:
		return []string{"15 seconds", "30 seconds", "60 seconds"}
	case PlatformInstagram:
		return []string{"30 seconds", "60 seconds", "90 seconds"}
	case PlatformYouTube:
		return []string{"3 minutes", "5 minutes", "10 minutes"}
	}
	return []string{"1 minute", "3 minutes", "5 minutes"}
}

// NormalizeTiming turns a timing answer into "N seconds", "A-B minutes"
// and so on. Bare numbers mean minutes. Anything else falls back to the
// platform default.
func NormalizeTiming(p Platform, input string) string {
	if d, ok := normalizeTiming(input); ok {
		return d
	}
	return DefaultDuration(p)
}

// ParseDuration reads a duration typed during onboarding, defaulting to
// two minutes.
func ParseDuration(input string) string {
	if d, ok := normalizeTiming(input); ok {
		return d
	}
	return "2 minutes"
}

func normalizeTiming(input string) (string, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", false
	}

	if m := timingUnitPattern.FindStringSubmatch(in); m != nil {
		d := m[1]
		if strings.Contains(d, "sec") || (strings.HasSuffix(d, "s") && !strings.Contains(d, "min")) {
			return strings.TrimSpace(secondsUnitPattern.ReplaceAllString(d, " seconds")), true
		}
		return strings.TrimSpace(minutesUnitPattern.ReplaceAllString(d, " minutes")), true
	}

	if m := bareNumberPattern.FindStringSubmatch(in); m != nil {
		if m[2] != "" {
			return fmt.Sprintf("%s-%s minutes", m[1], m[2]), true
		}
		return m[1] + " minutes", true
	}

	return "", false
}

// TargetSeconds converts a duration to seconds using its first integer.
// Ranges are not averaged. Unknown input yields 60.
func TargetSeconds(duration string) int {
	m := firstIntPattern.FindString(duration)
	if m == "" {
		return 60
	}
	n, _ := strconv.Atoi(m)
	if strings.Contains(strings.ToLower(duration), "minute") {
		return n * 60
	}
	return n
}
