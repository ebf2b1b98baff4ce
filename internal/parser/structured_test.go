package parser

import "testing"

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		first   string
	}{
		{"wrapped", `{"options":[{"type":"Question","text":"Why is your coffee bitter?"}]}`, 1, "Why is your coffee bitter?"},
		{"fenced array", "```json\n[{\"type\":\"Curiosity\",\"script\":\"a\"},{\"type\":\"Story\",\"script\":\"b\"}]\n```", 2, "a"},
		{"typed without text", `[{"type":"Curiosity Gap"}]`, 1, FallbackHook("Curiosity Gap")},
		{"too many", `[{"text":"1"},{"text":"2"},{"text":"3"},{"text":"4"}]`, 3, "1"},
		{"not json", "HOOK 1: nope", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeJSON(tt.content, HookFormat)
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			if tt.want > 0 && got[0].Text != tt.first {
				t.Errorf("first = %q, want %q", got[0].Text, tt.first)
			}
		})
	}
}

func TestDecodeJSONPrimaryText(t *testing.T) {
	got := DecodeJSON(`{"options":[{"type":"Subscribe","primary_text":"Sub now","supporting_text":"why"}]}`, CTAFormat)
	if len(got) != 1 || got[0].Text != "Sub now" || got[0].SupportingText != "why" {
		t.Errorf("DecodeJSON() = %+v", got)
	}
}
