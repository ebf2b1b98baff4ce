package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sant0-9/hookline/internal/script"
)

const hookBlocks = `Here are your hooks:

HOOK 1:
Type: Curiosity Gap
Text: "What if your morning coffee is secretly ruining your focus?"
Visual Note: Close-up of a steaming mug
Duration: 5 seconds

HOOK 2:
Type: Statistical Shock
Text: "90% of home brewers use water that's too hot."
Visual Note: Thermometer in a kettle
Duration: 4 seconds

HOOK 3:
Type: Personal Story
Text: "I wasted two years on bad coffee before learning this."
Visual Note: Old coffee maker in the trash
Duration: 6 seconds
`

func TestParseStructuredHooks(t *testing.T) {
	res := Parse(hookBlocks, HookFormat)
	if res.Strategy != "structured" {
		t.Errorf("Strategy = %q, want structured", res.Strategy)
	}
	want := []script.Option{
		{Type: "Curiosity Gap", Text: "What if your morning coffee is secretly ruining your focus?", Visual: "Close-up of a steaming mug", Duration: "5 seconds"},
		{Type: "Statistical Shock", Text: "90% of home brewers use water that's too hot.", Visual: "Thermometer in a kettle", Duration: "4 seconds"},
		{Type: "Personal Story", Text: "I wasted two years on bad coffee before learning this.", Visual: "Old coffee maker in the trash", Duration: "6 seconds"},
	}
	if diff := cmp.Diff(want, res.Options); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmojiOptionBlocks(t *testing.T) {
	text := `**Option 1: Problem/Agitation**
📝 Script: "Tired of bitter coffee every single morning?"
🎬 Visual: Grimacing face over a mug
⏱️ Duration: 5 seconds

**Option 2: Question**
📝 Script: "Have you ever wondered why cafe coffee tastes better?"
🎬 Visual: Barista at work
⏱️ Duration: 6 seconds`

	opts := Options(text, HookFormat)
	if len(opts) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(opts), opts)
	}
	if opts[0].Type != "Problem/Agitation" || opts[0].Text != "Tired of bitter coffee every single morning?" {
		t.Errorf("opts[0] = %+v", opts[0])
	}
	if opts[1].Visual != "Barista at work" || opts[1].Duration != "6 seconds" {
		t.Errorf("opts[1] = %+v", opts[1])
	}
}

func TestParseTypedFallbackForEmptyScripts(t *testing.T) {
	text := `Option 1: Problem/Agitation
📝 Script:
🎬 Visual: Quick montage of frustrated founder
⏱️ Duration: 5 seconds

Option 2: Curiosity Gap
📝 Script:
🎬 Visual: Close-up of a smartphone
⏱️ Duration: 6 seconds

Option 3: Statistical Shock
📝 Script:
🎬 Visual: Split screen
⏱️ Duration: 7 seconds`

	res := Parse(text, HookFormat)
	if res.Strategy != "typed-fallback" {
		t.Errorf("Strategy = %q, want typed-fallback", res.Strategy)
	}
	if len(res.Options) != 3 {
		t.Fatalf("len = %d, want 3", len(res.Options))
	}
	if got := res.Options[1].Text; got != FallbackHook("Curiosity Gap") {
		t.Errorf("curiosity fallback = %q", got)
	}
	if res.Options[1].Text == FallbackHook("Problem/Agitation") {
		t.Error("curiosity block got the problem/agitation fallback")
	}
	if res.Options[0].Visual != "Quick montage of frustrated founder" {
		t.Errorf("visual lost: %+v", res.Options[0])
	}
}

func TestParseMixedBlocksKeepsAll(t *testing.T) {
	text := "Option 1: Question\nScript: \"Ever wonder why your coffee tastes flat?\"\n\nOption 2: Curiosity\nScript:\n"
	opts := Options(text, HookFormat)
	if len(opts) != 2 {
		t.Fatalf("len = %d, want 2", len(opts))
	}
	if opts[0].Text != "Ever wonder why your coffee tastes flat?" {
		t.Errorf("opts[0] = %+v", opts[0])
	}
	if opts[1].Text != FallbackHook("Curiosity") {
		t.Errorf("opts[1] = %+v", opts[1])
	}
}

func TestParseScriptOnNextLine(t *testing.T) {
	text := "Option 1: Curiosity Gap\n📝 Script:\n\"The one thing baristas never tell you\"\n🎬 Visual: Wink"
	opts := Options(text, HookFormat)
	if len(opts) != 1 || opts[0].Text != "The one thing baristas never tell you" {
		t.Errorf("Options() = %+v", opts)
	}
}

func TestParseScriptContinuationWithColon(t *testing.T) {
	text := "HOOK 1:\nType: Curiosity Gap\nText:\nWarning: your grinder is lying to you.\nVisual Note: Grinder close-up\nDuration: 4 seconds"
	res := Parse(text, HookFormat)
	if res.Strategy != "structured" {
		t.Errorf("Strategy = %q, want structured", res.Strategy)
	}
	want := []script.Option{{
		Type:     "Curiosity Gap",
		Text:     "Warning: your grinder is lying to you.",
		Visual:   "Grinder close-up",
		Duration: "4 seconds",
	}}
	if diff := cmp.Diff(want, res.Options); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestQuotedSpans(t *testing.T) {
	text := `I'd go with "This is the coffee trick nobody is talking about right now" or maybe
“Your French press is lying to you, and here is the proof”. Avoid "short one".
Also "Visual: a long description of the scene that should be skipped here".`

	res := Parse(text, HookFormat)
	if res.Strategy != "quoted" {
		t.Fatalf("Strategy = %q, want quoted", res.Strategy)
	}
	if len(res.Options) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(res.Options), res.Options)
	}
	if res.Options[1].Text != "Your French press is lying to you, and here is the proof" {
		t.Errorf("opts[1] = %q", res.Options[1].Text)
	}
}

func TestNumberedLines(t *testing.T) {
	text := `Some ideas:
1. Hooks that work:
2. Nobody tells you this about cold brew concentrate
3) Short one
- The three-minute rule that fixed my pour-over forever
4. Duration: 5 seconds of footage here please`

	res := Parse(text, HookFormat)
	if res.Strategy != "numbered" {
		t.Fatalf("Strategy = %q, want numbered", res.Strategy)
	}
	want := []string{
		"Nobody tells you this about cold brew concentrate",
		"The three-minute rule that fixed my pour-over forever",
	}
	var got []string
	for _, o := range res.Options {
		got = append(got, o.Text)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NumberedLines mismatch (-want +got):\n%s", diff)
	}
}

func TestLastResort(t *testing.T) {
	long := strings.Repeat("word ", 40)
	res := Parse(long, HookFormat)
	if res.Strategy != "last-resort" || len(res.Options) != 1 {
		t.Fatalf("Parse() = %+v", res)
	}
	if n := len([]rune(res.Options[0].Text)); n != 100 {
		t.Errorf("len = %d, want 100", n)
	}

	empty := Parse("   ", HookFormat)
	if len(empty.Options) != 1 || empty.Options[0].Text != HookFormat.Placeholder {
		t.Errorf("empty Parse() = %+v", empty)
	}
}

func TestParseNeverReturnsMoreThanThree(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 5; i++ {
		b.WriteString("HOOK ")
		b.WriteString(string(rune('0' + i)))
		b.WriteString(":\nType: Question\nText: Is this the best coffee hook number ")
		b.WriteString(string(rune('0' + i)))
		b.WriteString("?\n\n")
	}
	for _, s := range Strategies {
		if got := s.Extract(b.String(), HookFormat); len(got) > MaxOptions {
			t.Errorf("%s returned %d options", s.Name, len(got))
		}
	}
	if got := Options(b.String(), HookFormat); len(got) != 3 {
		t.Errorf("Options() len = %d, want 3", len(got))
	}
}

func TestParseNeverEmptyForNonEmptyInput(t *testing.T) {
	inputs := []string{"x", "Option 1:", "Type:", "\"\"", "1.", "HOOK 1:\nText:\n"}
	for _, in := range inputs {
		if got := Options(in, HookFormat); len(got) == 0 {
			t.Errorf("Options(%q) returned nothing", in)
		}
	}
}

func TestParseCTAs(t *testing.T) {
	text := `**Option 1** - Gentle (build relationship)
Type: Subscribe
Primary Text: "Subscribe for weekly brewing tips"
Supporting Text: New techniques every Friday.

**Option 2** - Direct (take action now)
Type: Download
Primary Text: "Grab the free brew ratio chart"
Supporting Text: Never guess your ratio again.

Type: Join
Primary Text: "Join 10k coffee nerds"
Supporting Text: Share your setup.`

	opts := Options(text, CTAFormat)
	want := []script.Option{
		{Type: "Subscribe", Text: "Subscribe for weekly brewing tips", SupportingText: "New techniques every Friday."},
		{Type: "Download", Text: "Grab the free brew ratio chart", SupportingText: "Never guess your ratio again."},
		{Type: "Join", Text: "Join 10k coffee nerds", SupportingText: "Share your setup."},
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("CTA parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCTALastResort(t *testing.T) {
	opts := Options("Just tell them to follow you", CTAFormat)
	if len(opts) != 1 || opts[0].Type != "Action" || opts[0].SupportingText != "Take action now" {
		t.Errorf("Options() = %+v", opts)
	}
}
