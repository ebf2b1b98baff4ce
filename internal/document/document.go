// Package document loads context documents and tone samples from text
// and markdown files.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sant0-9/hookline/internal/script"
)

// Kind says where a document goes in the project.
type Kind string

const (
	KindContext Kind = "context"
	KindTone    Kind = "tone"
)

// MaxBytes caps a single file.
const MaxBytes = 1 << 20

// Document represents a loaded file
type Document struct {
	Content  string
	Preview  string
	Metadata Metadata
}

// Metadata contains document metadata. Title and Kind may come from YAML
// front matter.
type Metadata struct {
	Title         string    `yaml:"title" json:"title"`
	Kind          Kind      `yaml:"kind" json:"kind"`
	Tags          []string  `yaml:"tags" json:"tags,omitempty"`
	SourcePath    string    `yaml:"-" json:"source_path"`
	SourceFormat  string    `yaml:"-" json:"source_format"`
	FileSizeBytes int64     `yaml:"-" json:"file_size_bytes"`
	WordCount     int       `yaml:"-" json:"word_count"`
	LoadedAt      time.Time `yaml:"-" json:"loaded_at"`
}

// FileSizeHuman returns human-readable file size
func (m Metadata) FileSizeHuman() string {
	bytes := m.FileSizeBytes
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

var formats = map[string]string{
	".md":       "markdown",
	".markdown": "markdown",
	".txt":      "text",
}

// Load reads path. def is the kind used when the front matter names none.
func Load(path string, def Kind) (*Document, error) {
	format, ok := formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported document type %q: use .md or .txt", filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat document: %w", err)
	}
	if info.Size() > MaxBytes {
		return nil, fmt.Errorf("document %s is %d bytes, limit is %d", path, info.Size(), MaxBytes)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Metadata.Kind == "" {
		doc.Metadata.Kind = def
	}
	if doc.Metadata.Title == "" {
		doc.Metadata.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	doc.Metadata.SourcePath = path
	doc.Metadata.SourceFormat = format
	doc.Metadata.FileSizeBytes = info.Size()
	return doc, nil
}

// Parse splits optional YAML front matter from the body.
func Parse(raw []byte) (*Document, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))

	var meta Metadata
	body := raw
	if bytes.HasPrefix(raw, []byte("---\n")) {
		rest := raw[3:]
		end := bytes.Index(rest, []byte("\n---"))
		if end < 0 {
			return nil, fmt.Errorf("front matter is not closed")
		}
		if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
			return nil, fmt.Errorf("parse front matter: %w", err)
		}
		body = rest[end+4:]
		if i := bytes.IndexByte(body, '\n'); i >= 0 {
			body = body[i+1:]
		} else {
			body = nil
		}
	}

	switch meta.Kind {
	case "", KindContext, KindTone:
	default:
		return nil, fmt.Errorf("unknown document kind %q", meta.Kind)
	}

	content := strings.TrimSpace(string(body))
	if content == "" {
		return nil, fmt.Errorf("document is empty")
	}
	meta.WordCount = len(strings.Fields(content))
	meta.LoadedAt = time.Now()

	return &Document{
		Content:  content,
		Preview:  preview(content, 200),
		Metadata: meta,
	}, nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Apply adds each document to the project as a context document or a
// tone sample, in order. Context documents longer than MaxChunkChars are
// added as their chunks.
func Apply(s *script.ProjectState, docs ...*Document) {
	for _, d := range docs {
		switch d.Metadata.Kind {
		case KindTone:
			s.ToneSamples = append(s.ToneSamples, d.Content)
		default:
			if len(d.Content) <= MaxChunkChars {
				s.ContextDocuments = append(s.ContextDocuments, d.Content)
				continue
			}
			for _, c := range Split(d.Content, MaxChunkChars) {
				s.ContextDocuments = append(s.ContextDocuments, c.Text())
			}
		}
	}
}

// LoadAll loads context and tone files and applies them to s.
func LoadAll(s *script.ProjectState, contextPaths, tonePaths []string) ([]*Document, error) {
	var docs []*Document
	for _, group := range []struct {
		paths []string
		kind  Kind
	}{{contextPaths, KindContext}, {tonePaths, KindTone}} {
		for _, p := range group.paths {
			d, err := Load(p, group.kind)
			if err != nil {
				return nil, err
			}
			docs = append(docs, d)
		}
	}
	Apply(s, docs...)
	return docs, nil
}
