package router

import (
	"strings"

	"github.com/sant0-9/hookline/internal/agent"
	"github.com/sant0-9/hookline/internal/script"
)

var globalCommands = map[string]bool{
	"exit": true, "quit": true, "help": true, "status": true,
	"save": true, "export": true, "list": true,
}

// ctaFollowUpWords send input to the CTA strategist right after CTAs
// were generated.
var ctaFollowUpWords = []string{"optimize", "urgency", "variant", "youtube", "tiktok", "instagram", "softer"}

// ctaFollowUpWindow is how many recent events are searched for a CTA
// generation.
const ctaFollowUpWindow = 3

var (
	ctaCommands        = []string{"cta", "call to action", "action"}
	researchCommands   = []string{"research", "verify", "fact-check", "fact check"}
	stylistCommands    = []string{"humanize", "style", "tone", "voice"}
	challengerCommands = []string{"critique", "review", "challenge", "feedback"}
	editCommands       = []string{"edit hook", "edit story", "edit cta"}
	moreCommands       = []string{"more", "more options", "different", "other", "alternative"}
)

// customPrefixes are checked longest first so "custom:" wins over
// "custom".
var customPrefixes = []string{"custom:", "custom", "my own:", "my own", "use this:", "use this", "specific:", "specific"}

var pendingChoices = map[string]string{
	"use refined":   agent.ChoiceRefined,
	"use bold":      agent.ChoiceBold,
	"keep original": agent.ChoiceOriginal,
}

func isGlobal(t *turn) bool {
	return globalCommands[t.lower]
}

func awaitingMood(t *turn) bool {
	last := t.s.LastEvent()
	return last != nil && last.Type == script.EventAwaitingMoodResponse
}

func awaitingTiming(t *turn) bool {
	return t.s.AwaitingTiming()
}

// isSelection resolves the option number once so the handler can use it.
func (r *Router) isSelection(t *turn) bool {
	if t.selected > 0 {
		return true
	}
	n, ok := ParseSelection(t.input)
	if ok {
		t.selected = n
	}
	return ok
}

func isCTAFollowUp(t *turn) bool {
	return t.s.RecentHas(script.EventCTAsGenerated, ctaFollowUpWindow) && containsAny(t.lower, ctaFollowUpWords)
}

func isHookEnhance(t *turn) bool {
	if t.s.InActDevelopment() || t.s.LastGenerated != script.KindHook {
		return false
	}
	_, ok := agent.EnhanceTarget(t.lower)
	return ok
}

func isHookPending(t *turn) bool {
	if t.s.InActDevelopment() || t.s.Hook == nil || t.s.Hook.Pending == nil {
		return false
	}
	_, ok := pendingChoices[t.lower]
	return ok
}

func isCommand(t *turn) bool {
	return commandGroup(t) != ""
}

// commandGroup names the top-level command t.lower invokes. Outside act
// development the quality commands also accept trailing text, as in
// "tone more casual".
func commandGroup(t *turn) string {
	args := !t.s.InActDevelopment()
	switch {
	case exact(t.lower, ctaCommands):
		return "cta"
	case commandWord(t.lower, researchCommands, args):
		return "research"
	case commandWord(t.lower, stylistCommands, args):
		return "stylist"
	case commandWord(t.lower, challengerCommands, args):
		return "challenger"
	case hasAnyPrefix(t.lower, editCommands):
		return "edit"
	}
	return ""
}

func inActDevelopment(t *turn) bool {
	return t.s.InActDevelopment()
}

func isMore(t *turn) bool {
	return exact(t.lower, moreCommands)
}

func isCustom(t *turn) bool {
	for _, p := range customPrefixes {
		if wordPrefix(t.lower, p) {
			return true
		}
	}
	return false
}

func exact(s string, set []string) bool {
	for _, w := range set {
		if s == w {
			return true
		}
	}
	return false
}

// commandWord matches s against words exactly, or as the first word
// followed by a space when args is set.
func commandWord(s string, words []string, args bool) bool {
	for _, w := range words {
		if s == w || (args && strings.HasPrefix(s, w+" ")) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// wordPrefix reports whether s starts with p and p ends on a word
// boundary, so "customer" does not start with "custom".
func wordPrefix(s, p string) bool {
	if !strings.HasPrefix(s, p) {
		return false
	}
	if len(s) == len(p) || strings.HasSuffix(p, ":") {
		return true
	}
	c := s[len(p)]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
