// Package script holds the project state a conversation builds up: the
// hook, story and call-to-action components plus the event log the
// router reads to interpret follow-up input.
package script

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ComponentKind string

const (
	KindHook  ComponentKind = "hook"
	KindStory ComponentKind = "story"
	KindCTA   ComponentKind = "cta"
)

// Kinds lists the components in script order.
var Kinds = []ComponentKind{KindHook, KindStory, KindCTA}

// Label is the human name used in headings.
func (k ComponentKind) Label() string {
	switch k {
	case KindHook:
		return "Hook"
	case KindStory:
		return "Story"
	case KindCTA:
		return "Call to Action"
	}
	return string(k)
}

type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformGeneral   Platform = "general"
)

var Platforms = []Platform{PlatformYouTube, PlatformTikTok, PlatformInstagram, PlatformGeneral}

// ParsePlatform maps free text to a platform, defaulting to general.
func ParsePlatform(s string) Platform {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Platforms {
		if strings.Contains(s, string(p)) {
			return p
		}
	}
	switch {
	case strings.Contains(s, "reels"), strings.Contains(s, "insta"):
		return PlatformInstagram
	case strings.Contains(s, "shorts"), strings.Contains(s, "yt"):
		return PlatformYouTube
	case strings.Contains(s, "tik"):
		return PlatformTikTok
	}
	return PlatformGeneral
}

func (p Platform) Title() string {
	switch p {
	case PlatformYouTube:
		return "YouTube"
	case PlatformTikTok:
		return "TikTok"
	case PlatformInstagram:
		return "Instagram"
	}
	return "General"
}

type Module string

const (
	ModuleIdle   Module = "idle"
	ModuleHook   Module = "hook"
	ModuleStory  Module = "story"
	ModuleCTA    Module = "cta"
	ModuleReview Module = "review"
)

// Option is one parsed candidate presented to the user.
type Option struct {
	Type           string `json:"type"`
	Text           string `json:"text"`
	Visual         string `json:"visual,omitempty"`
	Duration       string `json:"duration,omitempty"`
	SupportingText string `json:"supporting_text,omitempty"`
}

type WorkflowMode string

const (
	WorkflowNone           WorkflowMode = ""
	WorkflowActDevelopment WorkflowMode = "act_development"
	WorkflowComplete       WorkflowMode = "complete"
)

// ActCount is the number of acts in a story.
const ActCount = 3

// ActDevelopmentState is the story's act-by-act drafting state.
type ActDevelopmentState struct {
	Mode           WorkflowMode      `json:"mode,omitempty"`
	CurrentAct     int               `json:"current_act,omitempty"`
	Acts           [ActCount]string  `json:"acts"`
	EnhancedDraft  string            `json:"enhanced_draft,omitempty"`
	AwaitingTiming bool              `json:"awaiting_timing,omitempty"`
	MoodHandled    bool              `json:"mood_handled,omitempty"`
	VideoDuration  string            `json:"video_duration,omitempty"`
	Beats          map[string]string `json:"beats,omitempty"`
}

// Act returns the draft for act n (1-based).
func (a *ActDevelopmentState) Act(n int) string {
	if n < 1 || n > ActCount {
		return ""
	}
	return a.Acts[n-1]
}

func (a *ActDevelopmentState) SetAct(n int, content string) {
	if n < 1 || n > ActCount {
		return
	}
	a.Acts[n-1] = content
}

func (a *ActDevelopmentState) Active() bool {
	return a.Mode == WorkflowActDevelopment
}

// PendingEnhancement holds refined and bold rewrites of one hook option
// until the user picks one.
type PendingEnhancement struct {
	Index    int    `json:"index"`
	Original Option `json:"original"`
	Refined  string `json:"refined"`
	Bold     string `json:"bold"`
}

type ScriptComponent struct {
	Kind            ComponentKind `json:"kind"`
	Content         string        `json:"content"`
	Finalized       bool          `json:"finalized"`
	Iterations      int           `json:"iterations"`
	FeedbackHistory []string      `json:"feedback_history,omitempty"`
	AllOptions      []Option      `json:"all_options,omitempty"`

	// Story only.
	Workflow ActDevelopmentState `json:"workflow"`
	// Hook only.
	Pending *PendingEnhancement `json:"pending,omitempty"`
	// CTA only.
	Variants []Option `json:"variants,omitempty"`
	Strategy string   `json:"strategy,omitempty"`
}

// Status renders the finalized/in progress/not started marker.
func (c *ScriptComponent) Status() string {
	switch {
	case c == nil || c.Content == "":
		return "❌ Not Started"
	case c.Finalized:
		return "✅ Finalized"
	default:
		return "⏳ In Progress"
	}
}

// Done reports whether the component is finalized with content. It is
// nil-safe.
func (c *ScriptComponent) Done() bool {
	return c != nil && c.Finalized && c.Content != ""
}

// Finalize locks in content. Empty content is never finalized.
func (c *ScriptComponent) Finalize(content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	c.Content = content
	c.Finalized = true
}

type ProjectState struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Topic         string   `json:"topic"`
	Platform      Platform `json:"platform"`
	Audience      string   `json:"audience"`
	VideoDuration string   `json:"video_duration,omitempty"`

	Hook  *ScriptComponent `json:"hook,omitempty"`
	Story *ScriptComponent `json:"story,omitempty"`
	CTA   *ScriptComponent `json:"cta,omitempty"`

	History          []Event  `json:"history"`
	ContextDocuments []string `json:"context_documents,omitempty"`
	ToneSamples      []string `json:"tone_samples,omitempty"`

	ActiveModule  Module        `json:"active_module"`
	LastGenerated ComponentKind `json:"last_generated,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProject creates a new ProjectState
func NewProject(topic string, platform Platform, audience string) *ProjectState {
	now := time.Now().UTC()
	if platform == "" {
		platform = PlatformGeneral
	}
	return &ProjectState{
		ID:           uuid.New().String(),
		Title:        titleFor(topic),
		Topic:        topic,
		Platform:     platform,
		Audience:     audience,
		ActiveModule: ModuleIdle,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SetTopic sets the topic and derives the title from it.
func (s *ProjectState) SetTopic(topic string) {
	s.Topic = strings.TrimSpace(topic)
	s.Title = titleFor(topic)
}

func titleFor(topic string) string {
	topic = strings.TrimSpace(topic)
	if r := []rune(topic); len(r) > 60 {
		topic = strings.TrimSpace(string(r[:60])) + "..."
	}
	if topic == "" {
		return "Untitled script"
	}
	return topic
}

// Component returns the component of kind k, or nil if not started.
func (s *ProjectState) Component(k ComponentKind) *ScriptComponent {
	switch k {
	case KindHook:
		return s.Hook
	case KindStory:
		return s.Story
	case KindCTA:
		return s.CTA
	}
	return nil
}

// Ensure returns the component of kind k, creating it if needed.
func (s *ProjectState) Ensure(k ComponentKind) *ScriptComponent {
	if c := s.Component(k); c != nil {
		return c
	}
	c := &ScriptComponent{Kind: k}
	switch k {
	case KindHook:
		s.Hook = c
	case KindStory:
		s.Story = c
	case KindCTA:
		s.CTA = c
	}
	return c
}

// Duration returns the known video duration, preferring the story's.
func (s *ProjectState) Duration() string {
	if s.Story != nil && s.Story.Workflow.VideoDuration != "" {
		return s.Story.Workflow.VideoDuration
	}
	return s.VideoDuration
}

// InActDevelopment reports whether the story is in act-by-act drafting.
func (s *ProjectState) InActDevelopment() bool {
	return s.Story != nil && s.Story.Workflow.Active()
}

func (s *ProjectState) AwaitingTiming() bool {
	return s.Story != nil && s.Story.Workflow.AwaitingTiming
}

// Complete reports whether every component is finalized with content.
// Generated but unselected content does not count.
func (s *ProjectState) Complete() bool {
	for _, k := range Kinds {
		if !s.Component(k).Done() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. Turns run against a clone so a failed turn
// leaves the original untouched.
func (s *ProjectState) Clone() *ProjectState {
	data, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("script: clone project: %v", err))
	}
	var out ProjectState
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("script: clone project: %v", err))
	}
	return &out
}

func (s *ProjectState) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
