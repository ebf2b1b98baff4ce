package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/session"
)

const (
	stageTopic    = "awaiting_topic"
	stagePlatform = "awaiting_platform"
	stageAudience = "awaiting_audience"
	stageDuration = "awaiting_duration"
	stageReady    = "ready"
)

// stageOf reads the onboarding step from the project itself, so a
// restarted server picks up where the user left off. A project with any
// history is past onboarding.
func stageOf(s *script.ProjectState) string {
	if len(s.History) > 0 {
		return stageReady
	}
	switch {
	case s.Topic == "":
		return stageTopic
	case s.Platform == "":
		return stagePlatform
	case s.Audience == "":
		return stageAudience
	case s.VideoDuration == "":
		return stageDuration
	}
	return stageReady
}

// newDraft is the empty project a web conversation starts from.
func newDraft() *script.ProjectState {
	s := script.NewProject("", script.PlatformGeneral, "")
	s.Platform = ""
	return s
}

var platformIcons = map[script.Platform]string{
	script.PlatformYouTube:   "📺",
	script.PlatformTikTok:    "🎵",
	script.PlatformInstagram: "📷",
	script.PlatformGeneral:   "🌐",
}

const welcomeText = `🎬 **Let's Create Your Video Script!**

I'll guide you through a simple 4-step process:
1️⃣ Tell me your video topic
2️⃣ Choose your platform
3️⃣ Define your audience
4️⃣ Select duration

**First: What's your video about?**
(Example: "How to make perfect coffee at home")`

// Wizard collects topic, platform, audience and duration before handing
// the conversation to the next router.
type Wizard struct {
	next session.Router
}

func NewWizard(next session.Router) *Wizard {
	return &Wizard{next: next}
}

func (w *Wizard) Route(ctx context.Context, s *script.ProjectState, m router.Message) (*router.Response, *script.ProjectState, error) {
	st := stageOf(s)
	if st == stageReady {
		return w.next.Route(ctx, s, m)
	}

	work := s.Clone()
	input := strings.TrimSpace(m.Text)
	var resp *router.Response

	switch st {
	case stageTopic:
		if input == "" || strings.EqualFold(input, "start") || strings.EqualFold(input, "/start") {
			resp = ask(welcomeText)
			break
		}
		work.SetTopic(input)
		resp = platformQuestion(work.Topic)

	case stagePlatform:
		choice := input
		if n := pick(m, input, len(script.Platforms)); n > 0 {
			choice = string(script.Platforms[n-1])
		}
		work.Platform = script.ParsePlatform(choice)
		resp = ask(fmt.Sprintf("Perfect! Creating for **%s**.\n\n**Who is your target audience?**\n\n"+
			"Describe your ideal viewer (e.g., 'Young professionals interested in tech', "+
			"'Parents looking for educational content', 'Fitness enthusiasts')", work.Platform.Title()))

	case stageAudience:
		if input == "" {
			resp = ask("**Who is your target audience?** Describe your ideal viewer in a few words.")
			break
		}
		work.Audience = input
		resp = durationQuestion(work)

	case stageDuration:
		choices := script.DurationChoices(work.Platform)
		if m.OptionSelected > 0 && m.OptionSelected <= len(choices) {
			input = choices[m.OptionSelected-1]
		}
		if strings.EqualFold(input, "custom") {
			resp = ask("Type the length you want, for example `45 seconds` or `4 minutes`.")
			break
		}
		work.VideoDuration = script.ParseDuration(input)
		resp = setupComplete(work)
	}

	if resp.Metadata == nil {
		resp.Metadata = map[string]any{}
	}
	resp.Metadata["rule"] = "onboarding"
	resp.Metadata["stage"] = stageOf(work)
	work.Touch()
	return resp, work, nil
}

// pick resolves an option number from the explicit selection or a bare
// digit.
func pick(m router.Message, input string, n int) int {
	if m.OptionSelected > 0 && m.OptionSelected <= n {
		return m.OptionSelected
	}
	if v, err := strconv.Atoi(input); err == nil && v > 0 && v <= n {
		return v
	}
	return 0
}

func ask(content string) *router.Response {
	return &router.Response{Content: content, RequiresUserInput: true, Metadata: map[string]any{}}
}

func platformQuestion(topic string) *router.Response {
	resp := ask(fmt.Sprintf("Great! A video about **%s**.\n\n**Which platform will you be posting on?**", topic))
	for i, p := range script.Platforms {
		label := p.Title()
		if p == script.PlatformGeneral {
			label = "General/Multiple"
		}
		resp.Options = append(resp.Options, router.Option{
			ID:    strconv.Itoa(i + 1),
			Label: platformIcons[p] + " " + label,
			Value: string(p),
		})
	}
	return resp
}

func durationQuestion(s *script.ProjectState) *router.Response {
	resp := ask(fmt.Sprintf("Target audience: **%s**\n\n**How long should your video be?**\n\nRecommended durations for %s:",
		s.Audience, s.Platform.Title()))
	for i, d := range script.DurationChoices(s.Platform) {
		resp.Options = append(resp.Options, router.Option{ID: strconv.Itoa(i + 1), Label: d, Value: d})
	}
	resp.Options = append(resp.Options, router.Option{ID: "custom", Label: "Custom duration", Value: "custom"})
	return resp
}

func setupComplete(s *script.ProjectState) *router.Response {
	resp := ask(fmt.Sprintf(`✅ **Project Setup Complete!**

📝 **Your Video Script Project:**
• **Topic:** %s
• **Platform:** %s
• **Audience:** %s
• **Duration:** %s

**What would you like to create first?**`, s.Topic, s.Platform.Title(), s.Audience, s.VideoDuration))
	resp.Options = []router.Option{
		{ID: "hook", Label: "🎣 Generate Hooks", Value: "hook"},
		{ID: "story", Label: "📖 Build Story Structure", Value: "story"},
		{ID: "cta", Label: "🎯 Create Call-to-Action", Value: "cta"},
	}
	return resp
}
