package document

import (
	"strings"
)

// MaxChunkChars bounds one context entry. Prompts include the leading
// context entries whole, so long documents are split first.
const MaxChunkChars = 1500

// Chunk is a run of paragraphs from one document
type Chunk struct {
	Content string
	Section string
}

// Text renders the chunk with its section heading, if any.
func (c Chunk) Text() string {
	if c.Section == "" {
		return c.Content
	}
	return c.Section + ": " + c.Content
}

// Split breaks content into paragraph-aligned chunks of at most limit
// characters. A single paragraph longer than limit becomes its own chunk.
// Markdown headings start a new section label and are not copied into
// the content.
func Split(content string, limit int) []Chunk {
	if limit <= 0 {
		limit = MaxChunkChars
	}

	var (
		chunks  []Chunk
		current strings.Builder
		section string
		owner   string
	)
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, Chunk{Content: current.String(), Section: owner})
			current.Reset()
		}
	}

	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if strings.HasPrefix(para, "#") {
			lines := strings.SplitN(para, "\n", 2)
			flush()
			section = strings.TrimSpace(strings.TrimLeft(lines[0], "# "))
			if len(lines) == 1 {
				continue
			}
			para = strings.TrimSpace(lines[1])
		}

		if current.Len()+len(para)+2 > limit && current.Len() > 0 {
			flush()
		}
		if current.Len() == 0 {
			owner = section
		} else {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}
