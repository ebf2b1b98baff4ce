package tui

import (
	"strconv"
	"strings"

	"github.com/sant0-9/hookline/internal/script"
)

type wizardStep int

const (
	stepTopic wizardStep = iota
	stepPlatform
	stepAudience
	stepDuration
	stepCustomDuration
	stepDone
)

const customChoice = "Custom duration"

// wizard collects the project basics before the first chat turn.
type wizard struct {
	step     wizardStep
	cursor   int
	topic    string
	platform script.Platform
	audience string
	duration string
}

// choices lists the selectable rows for list steps.
func (w *wizard) choices() []string {
	switch w.step {
	case stepPlatform:
		out := make([]string, len(script.Platforms))
		for i, p := range script.Platforms {
			out[i] = p.Title()
		}
		return out
	case stepDuration:
		return append(script.DurationChoices(w.platform), customChoice)
	}
	return nil
}

func (w *wizard) move(delta int) {
	n := len(w.choices())
	if n == 0 {
		return
	}
	w.cursor = (w.cursor + delta + n) % n
}

// submit applies input to the current step. It returns a hint when the
// input cannot be used.
func (w *wizard) submit(input string) string {
	input = strings.TrimSpace(input)
	choices := w.choices()
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(choices) {
		w.cursor = n - 1
		input = ""
	}

	switch w.step {
	case stepTopic:
		if input == "" {
			return "Tell me what the video is about."
		}
		w.topic = input
		w.step = stepPlatform

	case stepPlatform:
		if input != "" {
			w.platform = script.ParsePlatform(input)
		} else {
			w.platform = script.Platforms[w.cursor]
		}
		w.step = stepAudience

	case stepAudience:
		if input == "" {
			return "Describe your ideal viewer in a few words."
		}
		w.audience = input
		w.step = stepDuration

	case stepDuration:
		if input != "" {
			w.duration = script.ParseDuration(input)
			w.step = stepDone
			break
		}
		if choices[w.cursor] == customChoice {
			w.step = stepCustomDuration
			break
		}
		w.duration = choices[w.cursor]
		w.step = stepDone

	case stepCustomDuration:
		if input == "" {
			return "Type a length such as 45 seconds or 4 minutes."
		}
		w.duration = script.ParseDuration(input)
		w.step = stepDone
	}
	w.cursor = 0
	return ""
}

func (w *wizard) done() bool {
	return w.step == stepDone
}

// project builds the new project from the collected answers.
func (w *wizard) project() *script.ProjectState {
	p := script.NewProject(w.topic, w.platform, w.audience)
	p.VideoDuration = w.duration
	return p
}

func (w *wizard) question() string {
	switch w.step {
	case stepTopic:
		return "What's your video about?"
	case stepPlatform:
		return "Which platform will you be posting on?"
	case stepAudience:
		return "Who is your target audience?"
	case stepDuration:
		return "How long should your video be?"
	case stepCustomDuration:
		return "Type the length you want:"
	}
	return ""
}
