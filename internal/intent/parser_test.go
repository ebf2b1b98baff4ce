package intent

import (
	"context"
	"strings"
	"testing"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm/llmtest"
	"github.com/sant0-9/hookline/internal/script"
)

func TestQuickParse(t *testing.T) {
	p := &Parser{}

	tests := []struct {
		name        string
		instruction string
		wantAction  Action
	}{
		{"hook", "hook", ActionStartHook},
		{"hooks plural", "give me hooks", ActionStartHook},
		{"opening", "work on the opening", ActionStartHook},
		{"story", "story", ActionStartStory},
		{"narrative", "let's do the narrative", ActionStartStory},
		{"structure", "structure please", ActionStartStory},
		{"cta", "cta", ActionStartCTA},
		{"call to action", "write a call to action", ActionStartCTA},
		{"check", "check my work", ActionReviewScript},
		{"finalize", "finalize it", ActionFinalize},
		{"lock", "lock this in", ActionFinalize},
		{"hook wins over story", "hook for my story", ActionStartHook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.quickParse(tt.instruction)
			if got == nil {
				t.Fatal("quickParse returned nil, expected intent")
			}
			if got.Action != tt.wantAction {
				t.Errorf("Action = %v, want %v", got.Action, tt.wantAction)
			}
			if got.Source != SourceKeyword {
				t.Errorf("Source = %v, want %v", got.Source, SourceKeyword)
			}
		})
	}
}

func TestQuickParseReturnsNilForUnknown(t *testing.T) {
	p := &Parser{}

	// Unknown pattern should return nil to trigger LLM parsing
	got := p.quickParse("my audience loves latte art")
	if got != nil {
		t.Error("expected nil for unknown pattern, got intent")
	}
}

func TestParseFallsBackToModel(t *testing.T) {
	tests := []struct {
		reply string
		want  Action
	}{
		{"PROVIDE_CONTEXT", ActionProvideContext},
		{"  add_tone_sample\n", ActionAddToneSample},
		{"`REQUEST_FEEDBACK`", ActionFeedback},
		{"I think they want coffee", ActionUnclear},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			fake := llmtest.New(tt.reply)
			p := NewParser(fake.Completer(), config.DefaultConfig(), nil)
			s := script.NewProject("coffee brewing", script.PlatformTikTok, "home baristas")

			got, err := p.Parse(context.Background(), s, "my audience loves latte art")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.Action != tt.want {
				t.Errorf("Action = %v, want %v", got.Action, tt.want)
			}
			if got.Source != SourceLLM {
				t.Errorf("Source = %v, want %v", got.Source, SourceLLM)
			}
			if !strings.Contains(fake.LastPrompt(), `User input: "my audience loves latte art"`) {
				t.Errorf("prompt missing user input: %q", fake.LastPrompt())
			}
		})
	}
}

func TestParseKeywordSkipsModel(t *testing.T) {
	fake := llmtest.New()
	p := NewParser(fake.Completer(), config.DefaultConfig(), nil)
	s := script.NewProject("coffee brewing", script.PlatformTikTok, "")

	got, err := p.Parse(context.Background(), s, "story")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Action != ActionStartStory {
		t.Errorf("Action = %v, want %v", got.Action, ActionStartStory)
	}
	if fake.Calls() != 0 {
		t.Errorf("Calls() = %d, want 0", fake.Calls())
	}
}
