package intent

import (
	"strings"
	"testing"

	"github.com/sant0-9/hookline/internal/script"
)

func project() *script.ProjectState {
	return script.NewProject("coffee brewing", script.PlatformTikTok, "home baristas")
}

func TestAddToneSampleCounts(t *testing.T) {
	s := project()

	r := AddToneSample(s, "I talk fast and skip the fluff.")
	if !strings.Contains(r.Content, "sample 1 of ideally 2-5") {
		t.Errorf("Content = %q", r.Content)
	}
	for i := 0; i < 4; i++ {
		r = AddToneSample(s, "another sample")
	}
	if got := r.Metadata["sample_count"]; got != 5 {
		t.Errorf("sample_count = %v, want 5", got)
	}
	if !strings.Contains(r.Content, "We have enough samples") {
		t.Errorf("Content = %q", r.Content)
	}
	if s.LastEvent().Type != script.EventToneSampleAdded {
		t.Errorf("last event = %v", s.LastEvent().Type)
	}
}

func TestProvideContext(t *testing.T) {
	s := project()
	ProvideContext(s, "My channel reviews budget grinders.")
	if len(s.ContextDocuments) != 1 || s.ContextDocuments[0] != "My channel reviews budget grinders." {
		t.Errorf("ContextDocuments = %v", s.ContextDocuments)
	}
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		name    string
		module  script.Module
		content string
		want    string
		locked  bool
	}{
		{"active hook", script.ModuleHook, "Stop burning your beans.", "finalized the hook", true},
		{"idle", script.ModuleIdle, "Stop burning your beans.", "couldn't determine", false},
		{"empty hook", script.ModuleHook, "", "couldn't determine", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := project()
			s.Ensure(script.KindHook).Content = tt.content
			s.ActiveModule = tt.module

			r := Finalize(s)
			if !strings.Contains(r.Content, tt.want) {
				t.Errorf("Content = %q, want substring %q", r.Content, tt.want)
			}
			if s.Hook.Finalized != tt.locked {
				t.Errorf("Finalized = %v, want %v", s.Hook.Finalized, tt.locked)
			}
		})
	}
}

func TestUnclearProgress(t *testing.T) {
	s := project()
	if r := Unclear(s); !strings.Contains(r.Content, "Welcome! Let's create") {
		t.Errorf("new project Content = %q", r.Content)
	}

	s.Ensure(script.KindHook).Finalize("Stop burning your beans.")
	r := Unclear(s)
	if !strings.Contains(r.Content, "✅ Hook") || !strings.Contains(r.Content, "recommend working on `story` next") {
		t.Errorf("partial Content = %q", r.Content)
	}

	s.Ensure(script.KindStory).Content = "Three acts."
	s.Ensure(script.KindCTA).Content = "Follow for more."
	r = Unclear(s)
	if strings.Contains(r.Content, "is complete") || !strings.Contains(r.Content, "working on `story` next") {
		t.Errorf("generated but unselected Content = %q", r.Content)
	}

	s.Story.Finalize("Three acts.")
	s.CTA.Finalize("Follow for more.")
	if r := Unclear(s); !strings.Contains(r.Content, "is complete") {
		t.Errorf("complete Content = %q", r.Content)
	}
}

func TestReviewScript(t *testing.T) {
	s := project()
	s.Ensure(script.KindHook).Finalize("Stop burning your beans.")

	r := ReviewScript(s)
	if !strings.Contains(r.Content, "- Hook: ✅") || !strings.Contains(r.Content, "- Story: ❌") {
		t.Errorf("Content = %q", r.Content)
	}
	if !strings.Contains(r.Content, "**HOOK:**\nStop burning your beans.") {
		t.Errorf("Content = %q", r.Content)
	}
}
