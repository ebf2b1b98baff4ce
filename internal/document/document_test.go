package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sant0-9/hookline/internal/script"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		title   string
		kind    Kind
		content string
		wantErr string
	}{
		{"plain", "Coffee is chemistry.\n", "", "", "Coffee is chemistry.", ""},
		{"front matter", "---\ntitle: Brew notes\nkind: tone\ntags: [coffee]\n---\nShort and punchy.\n", "Brew notes", KindTone, "Short and punchy.", ""},
		{"crlf", "---\r\ntitle: Win\r\n---\r\nBody\r\n", "Win", "", "Body", ""},
		{"empty front matter", "---\n---\nBody", "", "", "Body", ""},
		{"unclosed", "---\ntitle: x\nbody", "", "", "", "not closed"},
		{"bad kind", "---\nkind: poem\n---\nBody", "", "", "", "unknown document kind"},
		{"empty body", "---\ntitle: x\n---\n\n", "", "", "", "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.raw))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if doc.Metadata.Title != tt.title {
				t.Errorf("Title = %q, want %q", doc.Metadata.Title, tt.title)
			}
			if doc.Metadata.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", doc.Metadata.Kind, tt.kind)
			}
			if doc.Content != tt.content {
				t.Errorf("Content = %q, want %q", doc.Content, tt.content)
			}
		})
	}
}

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := write(t, "brand-voice.md", "Warm, direct, a little nerdy about water temperature.")
	doc, err := Load(p, KindTone)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Metadata.Title != "brand-voice" {
		t.Errorf("Title = %q", doc.Metadata.Title)
	}
	if doc.Metadata.Kind != KindTone {
		t.Errorf("Kind = %q", doc.Metadata.Kind)
	}
	if doc.Metadata.SourceFormat != "markdown" {
		t.Errorf("SourceFormat = %q", doc.Metadata.SourceFormat)
	}
	if doc.Metadata.WordCount != 8 {
		t.Errorf("WordCount = %d, want 8", doc.Metadata.WordCount)
	}

	if _, err := Load(write(t, "deck.pdf", "x"), KindContext); err == nil {
		t.Error("Load() accepted a pdf")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt"), KindContext); err == nil {
		t.Error("Load() accepted a missing file")
	}
}

func TestLoadAll(t *testing.T) {
	ctx := write(t, "facts.txt", "Water at 93C extracts best.")
	tone := write(t, "sample.md", "---\nkind: context\n---\nActually research, not tone.")
	tone2 := write(t, "sample2.txt", "Keep it snappy.")

	s := script.NewProject("coffee", script.PlatformTikTok, "")
	docs, err := LoadAll(s, []string{ctx}, []string{tone, tone2})
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("loaded %d documents, want 3", len(docs))
	}
	want := []string{"Water at 93C extracts best.", "Actually research, not tone."}
	if strings.Join(s.ContextDocuments, "|") != strings.Join(want, "|") {
		t.Errorf("ContextDocuments = %q", s.ContextDocuments)
	}
	if len(s.ToneSamples) != 1 || s.ToneSamples[0] != "Keep it snappy." {
		t.Errorf("ToneSamples = %q", s.ToneSamples)
	}
}

func TestFileSizeHuman(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := (Metadata{FileSizeBytes: tt.size}).FileSizeHuman(); got != tt.want {
			t.Errorf("FileSizeHuman(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
