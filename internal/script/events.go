package script

import "time"

type EventType string

const (
	EventHooksGenerated       EventType = "hooks_generated"
	EventStoriesGenerated     EventType = "stories_generated"
	EventCTAsGenerated        EventType = "ctas_generated"
	EventHookSelected         EventType = "hook_selected"
	EventStorySelected        EventType = "story_selected"
	EventCTASelected          EventType = "cta_selected"
	EventAwaitingMoodResponse EventType = "awaiting_mood_response"
	EventMoodReceived         EventType = "mood_received"
	EventCustomContent        EventType = "custom_content"
	EventComponentEdited      EventType = "component_edited"
	EventEnhancementApplied   EventType = "enhancement_applied"
	EventContextAdded         EventType = "context_added"
	EventToneSampleAdded      EventType = "tone_sample_added"
	EventComponentFinalized   EventType = "component_finalized"
	EventUserMessage          EventType = "user_message"
)

// Event is one entry in the append-only conversation log.
type Event struct {
	Type      EventType     `json:"type"`
	Component ComponentKind `json:"component,omitempty"`
	Options   []Option      `json:"options,omitempty"`
	Index     int           `json:"index,omitempty"`
	Text      string        `json:"text,omitempty"`
	At        time.Time     `json:"at"`
}

// GeneratedEvent returns the *_generated event type for k.
func GeneratedEvent(k ComponentKind) EventType {
	switch k {
	case KindHook:
		return EventHooksGenerated
	case KindStory:
		return EventStoriesGenerated
	}
	return EventCTAsGenerated
}

// SelectedEvent returns the *_selected event type for k.
func SelectedEvent(k ComponentKind) EventType {
	switch k {
	case KindHook:
		return EventHookSelected
	case KindStory:
		return EventStorySelected
	}
	return EventCTASelected
}

func (s *ProjectState) Append(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	s.History = append(s.History, e)
}

// RecordGenerated appends the generated event carrying the full option
// list and moves LastGenerated in the same step.
func (s *ProjectState) RecordGenerated(k ComponentKind, options []Option) {
	opts := make([]Option, len(options))
	copy(opts, options)
	s.Append(Event{Type: GeneratedEvent(k), Component: k, Options: opts})
	s.LastGenerated = k
}

// LastEvent returns the most recent event, or nil.
func (s *ProjectState) LastEvent() *Event {
	if len(s.History) == 0 {
		return nil
	}
	return &s.History[len(s.History)-1]
}

// RecentHas reports whether one of the last n events has type t.
func (s *ProjectState) RecentHas(t EventType, n int) bool {
	for i := len(s.History) - 1; i >= 0 && i >= len(s.History)-n; i-- {
		if s.History[i].Type == t {
			return true
		}
	}
	return false
}

// LatestOptions returns the options of the most recent generated event
// for the last generated component.
func (s *ProjectState) LatestOptions() (ComponentKind, []Option, bool) {
	if s.LastGenerated == "" {
		return "", nil, false
	}
	want := GeneratedEvent(s.LastGenerated)
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Type == want {
			return s.LastGenerated, s.History[i].Options, true
		}
	}
	return "", nil, false
}
