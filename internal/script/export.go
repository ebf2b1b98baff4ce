package script

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AssembleActs joins the written acts with their time allocation.
// Acts with no draft are skipped.
func AssembleActs(w *ActDevelopmentState, duration string) string {
	var parts []string
	for i := 1; i <= ActCount; i++ {
		if act := w.Act(i); act != "" {
			parts = append(parts, fmt.Sprintf("**Act %d (%s):**\n%s", i, ActDuration(duration, i), act))
		}
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// StoryText returns the story's content, assembling acts when the story
// has drafts but no consolidated content.
func (s *ProjectState) StoryText() string {
	if s.Story == nil {
		return ""
	}
	if s.Story.Content != "" {
		return s.Story.Content
	}
	return AssembleActs(&s.Story.Workflow, s.Duration())
}

func (s *ProjectState) componentText(k ComponentKind) string {
	if k == KindStory {
		return s.StoryText()
	}
	if c := s.Component(k); c != nil {
		return c.Content
	}
	return ""
}

// ExportText renders the HOOK, STORY and CTA sections in order. Missing
// components are left out.
func ExportText(s *ProjectState) string {
	labels := map[ComponentKind]string{KindHook: "HOOK", KindStory: "STORY", KindCTA: "CTA"}
	var sections []string
	for _, k := range Kinds {
		if text := s.componentText(k); text != "" {
			sections = append(sections, fmt.Sprintf("%s:\n%s", labels[k], text))
		}
	}
	return strings.Join(sections, "\n\n")
}

// ExportMarkdown renders a titled script document with project details.
func ExportMarkdown(s *ProjectState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	fmt.Fprintf(&b, "**Platform:** %s\n", s.Platform.Title())
	if s.Audience != "" {
		fmt.Fprintf(&b, "**Audience:** %s\n", s.Audience)
	}
	if d := s.Duration(); d != "" {
		fmt.Fprintf(&b, "**Duration:** %s\n", d)
	}

	if s.Hook != nil && s.Hook.Content != "" {
		fmt.Fprintf(&b, "\n## HOOK\n\n%s\n", s.Hook.Content)
	}
	if s.Story != nil {
		w := &s.Story.Workflow
		hasActs := false
		for i := 1; i <= ActCount; i++ {
			if w.Act(i) != "" {
				hasActs = true
			}
		}
		switch {
		case hasActs:
			b.WriteString("\n## STORY\n")
			for i := 1; i <= ActCount; i++ {
				if act := w.Act(i); act != "" {
					fmt.Fprintf(&b, "\n### Act %d\n\n%s\n", i, act)
				}
			}
		case s.Story.Content != "":
			fmt.Fprintf(&b, "\n## STORY\n\n%s\n", s.Story.Content)
		}
	}
	if s.CTA != nil && s.CTA.Content != "" {
		fmt.Fprintf(&b, "\n## CALL TO ACTION\n\n%s\n", s.CTA.Content)
	}
	return b.String()
}

// Backup is the JSON export of a whole project.
type Backup struct {
	Project    ProjectSummary                     `json:"project"`
	Components map[ComponentKind]*ScriptComponent `json:"components"`
	State      *ProjectState                      `json:"state"`
}

// ProjectSummary is the listing view of a project.
type ProjectSummary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Topic         string   `json:"topic"`
	Platform      Platform `json:"platform"`
	Audience      string   `json:"audience"`
	VideoDuration string   `json:"video_duration,omitempty"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

func (s *ProjectState) Summary() ProjectSummary {
	status := StatusInProgress
	if s.Complete() {
		status = StatusCompleted
	}
	return ProjectSummary{
		ID:            s.ID,
		Title:         s.Title,
		Topic:         s.Topic,
		Platform:      s.Platform,
		Audience:      s.Audience,
		VideoDuration: s.Duration(),
		Status:        status,
		CreatedAt:     s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ExportJSON returns an indented JSON dump of the project and its
// components.
func ExportJSON(s *ProjectState) ([]byte, error) {
	b := Backup{
		Project:    s.Summary(),
		Components: map[ComponentKind]*ScriptComponent{},
		State:      s,
	}
	for _, k := range Kinds {
		if c := s.Component(k); c != nil {
			b.Components[k] = c
		}
	}
	return json.MarshalIndent(b, "", "  ")
}
