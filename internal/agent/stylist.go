package agent

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/script"
)

var aiIndicators = []string{
	"it is important to note",
	"it is worth noting",
	"in conclusion",
	"in summary",
	"furthermore",
	"additionally",
	"however, it should be noted",
	"delve into",
	"leverage",
	"utilize",
	"robust",
	"comprehensive",
	"innovative solution",
	"cutting-edge",
	"state-of-the-art",
	"paradigm shift",
	"synergy",
	"best practices",
	"key takeaway",
	"it's crucial to understand",
	"let's explore",
	"in today's digital age",
	"in the modern era",
}

var transitionWords = []string{"however", "furthermore", "additionally", "moreover", "nevertheless"}

var platformToneTips = map[script.Platform]string{
	script.PlatformYouTube:   "• Be conversational and educational\n• Use 'you' frequently\n• Include personal anecdotes",
	script.PlatformTikTok:    "• Keep it snappy and trendy\n• Use current slang appropriately\n• Be direct and energetic",
	script.PlatformInstagram: "• Be inspirational and visual\n• Use emotive language\n• Keep it relatable",
	script.PlatformGeneral:   "• Be authentic and engaging\n• Match audience expectations\n• Stay consistent throughout",
}

const stylistReady = `## ✍️ Stylist Ready

I'll help you create authentic, engaging content that doesn't sound AI-generated!

**My Services:**
• ` + "`humanize`" + ` - Make content sound natural
• ` + "`tone: [description]`" + ` - Adjust tone
• ` + "`style: [reference]`" + ` - Match specific style
• ` + "`voice`" + ` - Develop unique voice

What style assistance do you need?`

const humanizePrompt = `Transform this content to sound more natural and human, less AI-generated:

Original: %s

Guidelines:
1. Remove formal/corporate language
2. Add conversational elements
3. Use contractions naturally
4. Include personal touches
5. Vary sentence structure
6. Add authentic transitions
7. Remove AI clichés
8. Make it sound like a real person talking

Platform: %s
Audience: %s

Provide the humanized version that maintains the message but sounds authentic.`

const tonePrompt = `Adjust the tone of this content:

Content: %s
Desired Tone: %s
Platform: %s
Audience: %s

Provide:
1. Adjusted version with the new tone
2. Key changes made
3. Why this tone works for the audience

Maintain the core message while transforming the delivery.`

const styleSamplesPrompt = `Analyze and match this style:

Reference Samples:
%s

Apply this style to create content about: %s
Platform: %s
Audience: %s

Provide:
1. Style analysis (key characteristics)
2. Sample content in this style
3. Style guide for consistency`

const styleReferencePrompt = `Create content in this style: %s

Topic: %s
Platform: %s
Audience: %s

Provide:
1. Style interpretation
2. Sample content
3. Key style elements to maintain`

const voicePrompt = `Develop a unique, authentic voice for content about: %s
Platform: %s
Audience: %s
Current samples: %d provided

Create:
1. Voice Personality Profile
2. Signature Phrases
3. Speaking Patterns
4. Vocabulary Choices
5. Example Application

Make it distinctive but natural.`

const styleAnalysisPrompt = `Analyze the style and tone of this script:

%s

Provide:
1. Current Style Profile (formality, energy, complexity, personality)
2. AI Detection Score (1-10, lower is better) with the AI language indicators found
3. Authenticity Assessment: what sounds natural and what needs work
4. Platform Fit (%s) with suggested adjustments
5. Improvement Recommendations`

// Stylist humanizes content and works on tone, style and voice.
type Stylist struct {
	base
}

// NewStylist creates a new Stylist
func NewStylist(c llm.TextCompleter, cfg *config.Config) *Stylist {
	return &Stylist{base: newBase(config.RoleStylist, c, cfg)}
}

// Process dispatches on input: humanize, tone, style, voice, otherwise
// a style analysis of the whole script.
func (st *Stylist) Process(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "humanize"), strings.Contains(lower, "natural"):
		return st.humanize(ctx, s, input)
	case strings.Contains(lower, "tone"):
		return st.tone(ctx, s, input)
	case strings.Contains(lower, "style"):
		return st.style(ctx, s, input)
	case strings.Contains(lower, "voice"):
		return st.voice(ctx, s)
	}
	return st.analyze(ctx, s)
}

// humanizeTarget picks the text to humanize: text after a colon, else the
// first unfinalized component from story to hook, else everything.
func humanizeTarget(s *script.ProjectState, input string) string {
	if _, after, ok := strings.Cut(input, ":"); ok {
		return strings.TrimSpace(after)
	}
	for _, k := range []script.ComponentKind{script.KindStory, script.KindCTA, script.KindHook} {
		if c := s.Component(k); c != nil && c.Content != "" && !c.Finalized {
			return c.Content
		}
	}
	return scriptContent(s, " ")
}

func (st *Stylist) humanize(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	content := humanizeTarget(s, input)
	if content == "" {
		return &Result{Message: "## ✍️ Nothing to Humanize Yet\n\nPlease create some content first, then I can help make it sound more natural!\n\n• Generate a hook, story, or CTA\n• Then type `humanize` to make it more authentic\n• Or provide specific text after `humanize:`"}, nil
	}

	out, err := st.ask(ctx, fmt.Sprintf(humanizePrompt, content, s.Platform, audience(s)))
	if err != nil {
		return nil, err
	}
	score := AIScore(out)

	preview := clip(content, 200)
	if len([]rune(content)) > 200 {
		preview += "..."
	}
	msg := fmt.Sprintf("## 🎭 Humanized Version\n\n**Original:**\n```\n%s\n```\n\n**Natural Version:**\n```\n%s\n```\n\n### 📊 Authenticity Score: %d/10\n%s\n\n**Next Steps:**\n• Type `tone: [adjustment]` to refine further\n• Type `style: [description]` to match specific style",
		preview, out, 10-score, authenticityFeedback(score))
	return &Result{Message: msg}, nil
}

func (st *Stylist) tone(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	desc := strings.TrimSpace(strings.ReplaceAll(stripCommand(input, "tone"), ":", ""))
	content := scriptContent(s, " ")
	if content == "" {
		return &Result{Message: noContentMessage("adjust tone")}, nil
	}
	target := desc
	if target == "" {
		target = "Optimal for " + string(s.Platform)
	}

	out, err := st.ask(ctx, fmt.Sprintf(tonePrompt, content, target, s.Platform, audience(s)))
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("## 🎨 Tone Adjustment\n\n**Target Tone:** %s\n\n%s\n\n### 🎯 Platform Alignment:\n%s", target, out, PlatformToneTips(s.Platform))
	return &Result{Message: msg}, nil
}

func (st *Stylist) style(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	ref := strings.TrimSpace(strings.ReplaceAll(stripCommand(input, "style"), ":", ""))
	var prompt string
	if len(s.ToneSamples) > 0 {
		prompt = fmt.Sprintf(styleSamplesPrompt, strings.Join(s.ToneSamples, "\n"), s.Topic, s.Platform, audience(s))
	} else {
		prompt = fmt.Sprintf(styleReferencePrompt, orDefault(ref, "engaging and authentic"), s.Topic, s.Platform, audience(s))
	}
	out, err := st.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	msg := "## 🎭 Style Matching\n\n" + out + "\n\n**Tip:** Add your own examples as tone samples for better matching!"
	return &Result{Message: msg}, nil
}

func (st *Stylist) voice(ctx context.Context, s *script.ProjectState) (*Result, error) {
	out, err := st.ask(ctx, fmt.Sprintf(voicePrompt, s.Topic, s.Platform, audience(s), len(s.ToneSamples)))
	if err != nil {
		return nil, err
	}
	return &Result{Message: "## 🎤 Voice Development\n\n" + out}, nil
}

func (st *Stylist) analyze(ctx context.Context, s *script.ProjectState) (*Result, error) {
	content := scriptContent(s, " ")
	if content == "" {
		return &Result{Message: stylistReady}, nil
	}
	out, err := st.ask(ctx, fmt.Sprintf(styleAnalysisPrompt, content, s.Platform))
	if err != nil {
		return nil, err
	}
	score := AIScore(content)
	msg := fmt.Sprintf("## 📊 Style Analysis\n\n%s\n\n### 🤖 AI Detection Score: %d/10\n%s\n\n**Actions Available:**\n• Type `humanize` to make more natural\n• Type `tone: casual` to relax the style\n• Type `voice` to develop unique personality",
		out, score, authenticityFeedback(score))
	return &Result{Message: msg}, nil
}

// AIScore rates from 1 to 10 how machine-written text sounds.
func AIScore(text string) int {
	score := 0.0
	lower := strings.ToLower(text)
	for _, ind := range aiIndicators {
		if strings.Contains(lower, ind) {
			score += 0.5
		}
	}

	sentences := strings.Split(text, ".")
	if len(sentences) > 3 {
		seen := map[string]bool{}
		repeated := false
		for _, sentence := range sentences {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			start := clip(sentence, 10)
			if seen[start] {
				repeated = true
			}
			seen[start] = true
		}
		if repeated {
			score++
		}
	}

	transitions := 0
	for _, t := range transitionWords {
		if strings.Contains(lower, t) {
			transitions++
		}
	}
	if transitions > 2 {
		score++
	}

	if !strings.Contains(lower, "don't") && !strings.Contains(lower, "won't") && !strings.Contains(lower, "isn't") {
		score++
	}
	return clampScore(math.RoundToEven(score))
}

func authenticityFeedback(score int) string {
	switch {
	case score <= 3:
		return "✅ Excellent! Sounds natural and human."
	case score <= 5:
		return "👍 Good! Minor adjustments could help."
	case score <= 7:
		return "⚠️ Moderate AI indicators. Needs humanization."
	}
	return "❌ Strong AI patterns detected. Significant rewriting recommended."
}

// PlatformToneTips returns tone guidance for p.
func PlatformToneTips(p script.Platform) string {
	if tips, ok := platformToneTips[p]; ok {
		return tips
	}
	return platformToneTips[script.PlatformGeneral]
}

func noContentMessage(action string) string {
	return fmt.Sprintf("## ✍️ No Content to %s\n\nPlease create some content first:\n• Type `hook` to create an opening\n• Type `story` to develop narrative\n• Type `cta` to create call-to-action\n\nThen I can help you %s!", titleWords(action), action)
}
