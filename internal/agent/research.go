package agent

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/script"
)

var (
	statisticPattern  = regexp.MustCompile(`\d+(?:\.\d+)?%|\d+(?:,\d{3})*(?:\.\d+)?(?:\s*(?:million|billion|thousand))?`)
	comparisonPattern = regexp.MustCompile(`(?:more|less|better|worse|higher|lower|faster|slower)\s+than`)
	absolutePattern   = regexp.MustCompile(`(?:always|never|every|all|none|only|guaranteed)`)
)

var (
	highCredibility = []string{
		"peer-reviewed", "published study", "research paper", "official data",
		"government report", "academic journal", "systematic review",
	}
	mediumCredibility = []string{
		"industry report", "survey", "case study", "white paper",
		"expert opinion", "market research", "statistical analysis",
	}
	redFlags = []string{
		"no source", "anonymous", "allegedly", "reportedly",
		"some say", "people are saying", "everyone knows",
	}
)

const researchReady = `## 🔍 Research Analyst Ready

I'm here to help ensure your script is accurate and credible!

**Available Services:**
• ` + "`research: [topic]`" + ` - Deep dive into any subject
• ` + "`verify: [claim]`" + ` - Fact-check specific statements
• ` + "`source: [claim]`" + ` - Find credible sources

What would you like me to research or verify?`

const verifyClaimPrompt = `As a research analyst, verify the following claim for a video about %s:

Claim: %s

Provide:
1. Verification status (Verified/Unverified/Partially Verified)
2. Supporting evidence or lack thereof
3. Credibility assessment
4. Suggested improvements for accuracy
5. Alternative phrasing if needed

Be thorough but concise.`

const verifyClaimsPrompt = `As a research analyst, verify these claims from a video script about %s:

%s

For each claim:
1. Verification status
2. Credibility assessment
3. Suggested improvement

Be thorough but concise.`

const researchTopicPrompt = `As a research analyst, provide comprehensive research on the following topic:

Topic: %s
Context: Video script about %s
Audience: %s
Platform: %s

Provide:
1. Key Statistics (with implied sources)
2. Current Trends
3. Common Misconceptions
4. Compelling Data Points
5. Expert Consensus
6. Controversial Aspects (if any)

Format the research to be immediately usable in a video script.
Focus on credible, recent information.`

const findSourcesPrompt = `As a research analyst, suggest credible sources for the following claim:

Claim: %s
Context: Video about %s

Group them as primary sources (academic papers, government data, original research), secondary sources (industry reports, expert interviews, reputable news outlets) and supporting sources (case studies, statistics databases, professional organizations).

For each, say where to find it, why it's credible and how to cite it.`

const credibilityPrompt = `As a research analyst, analyze the credibility of this video script:

%s

Provide:
1. Overall Credibility Score (1-10)
2. Claims Requiring Verification
3. Unsupported Statements
4. Credibility Strengths
5. Areas for Improvement
6. Specific Recommendations

Be constructive and specific.`

// ResearchAnalyst fact-checks the script and researches topics.
type ResearchAnalyst struct {
	base
}

// NewResearchAnalyst creates a new ResearchAnalyst
func NewResearchAnalyst(c llm.TextCompleter, cfg *config.Config) *ResearchAnalyst {
	return &ResearchAnalyst{base: newBase(config.RoleResearch, c, cfg)}
}

// Process dispatches on input: verify, research, source, or a
// credibility review of the whole script when input is empty.
func (a *ResearchAnalyst) Process(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "verify"):
		return a.verify(ctx, s, input)
	case strings.Contains(lower, "research"):
		return a.research(ctx, s, input)
	case strings.Contains(lower, "source"):
		return a.sources(ctx, s, input)
	}
	return a.credibility(ctx, s)
}

func (a *ResearchAnalyst) verify(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	claim := strings.TrimSpace(strings.TrimPrefix(stripCommand(input, "verify"), ":"))
	var prompt string
	if claim != "" {
		prompt = fmt.Sprintf(verifyClaimPrompt, s.Topic, claim)
	} else {
		claims := ExtractClaims(scriptContent(s, " "))
		if len(claims) == 0 {
			prompt = fmt.Sprintf("No specific claims found in the script about %s. Provide general fact-checking guidance.", s.Topic)
		} else {
			var lines []string
			for i, c := range claims {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, c))
			}
			prompt = fmt.Sprintf(verifyClaimsPrompt, s.Topic, strings.Join(lines, "\n"))
		}
	}

	out, err := a.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	msg := "## 🔍 Fact Verification Report\n\n" + out +
		"\n\n**Next steps:**\n• Type `research: [topic]` to find supporting data\n• Type `source: [claim]` to find credible sources"
	return &Result{Message: msg}, nil
}

func (a *ResearchAnalyst) research(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	topic := strings.TrimSpace(strings.ReplaceAll(stripCommand(input, "research"), ":", ""))
	if topic == "" {
		topic = s.Topic
	}
	out, err := a.ask(ctx, fmt.Sprintf(researchTopicPrompt, topic, s.Topic, audience(s), s.Platform))
	if err != nil {
		return nil, err
	}
	score := CredibilityScore(out)
	msg := fmt.Sprintf("## 📊 Research Report: %s\n\n%s\n\n### 📈 Credibility Assessment\n**Score: %d/10**\n%s\n\nPick 2-3 of the most compelling statistics and paraphrase them in your own voice.",
		topic, out, score, credibilityFeedback(score))
	return &Result{Message: msg}, nil
}

func (a *ResearchAnalyst) sources(ctx context.Context, s *script.ProjectState, input string) (*Result, error) {
	claim := strings.TrimSpace(strings.ReplaceAll(stripCommand(input, "source"), ":", ""))
	if claim == "" {
		claim = "General sources for " + s.Topic
	}
	out, err := a.ask(ctx, fmt.Sprintf(findSourcesPrompt, claim, s.Topic))
	if err != nil {
		return nil, err
	}
	msg := "## 📚 Source Recommendations\n\n" + out + "\n\n**Remember:** Your credibility depends on your sources!"
	return &Result{Message: msg}, nil
}

func (a *ResearchAnalyst) credibility(ctx context.Context, s *script.ProjectState) (*Result, error) {
	full := labelledScript(s, "%s: %s", "\n\n")
	if full == "" {
		return &Result{Message: researchReady}, nil
	}
	out, err := a.ask(ctx, fmt.Sprintf(credibilityPrompt, full))
	if err != nil {
		return nil, err
	}
	msg := "## 🔬 Script Credibility Analysis\n\n" + out +
		"\n\n**Next Actions:**\n• Type `verify: [specific claim]` to fact-check\n• Type `research: [topic]` for supporting data\n• Type `source: [claim]` for citations"
	return &Result{Message: msg}, nil
}

// CredibilityScore rates text from 1 to 10 by counting credibility
// indicators and red flags.
func CredibilityScore(text string) int {
	score := 5.0
	lower := strings.ToLower(text)
	for _, ind := range highCredibility {
		if strings.Contains(lower, ind) {
			score += 0.5
		}
	}
	for _, ind := range mediumCredibility {
		if strings.Contains(lower, ind) {
			score += 0.3
		}
	}
	for _, flag := range redFlags {
		if strings.Contains(lower, flag) {
			score -= 0.5
		}
	}
	if statisticPattern.MatchString(text) {
		score += 0.5
	}
	if absolutePattern.MatchString(text) {
		score -= 0.3
	}
	return clampScore(math.RoundToEven(score))
}

func credibilityFeedback(score int) string {
	switch {
	case score >= 8:
		return "✅ Excellent credibility! Well-researched with strong sources."
	case score >= 6:
		return "👍 Good credibility. Consider adding more specific sources."
	case score >= 4:
		return "⚠️ Moderate credibility. Needs more verification and sources."
	}
	return "❌ Low credibility. Significant verification needed."
}

// ExtractClaims finds statistics and comparisons worth checking, with a
// little surrounding context. At most five are returned.
func ExtractClaims(content string) []string {
	var claims []string
	for _, loc := range statisticPattern.FindAllStringIndex(content, -1) {
		claims = append(claims, window(content, loc, 50))
	}
	for _, loc := range comparisonPattern.FindAllStringIndex(content, -1) {
		claims = append(claims, window(content, loc, 30))
	}
	if len(claims) > 5 {
		claims = claims[:5]
	}
	return claims
}

func window(s string, loc []int, pad int) string {
	start := loc[0] - pad
	if start < 0 {
		start = 0
	}
	end := loc[1] + pad
	if end > len(s) {
		end = len(s)
	}
	return strings.ToValidUTF8(strings.TrimSpace(s[start:end]), "")
}

func clampScore(f float64) int {
	switch {
	case f < 1:
		return 1
	case f > 10:
		return 10
	}
	return int(f)
}

// stripCommand removes the first occurrence of cmd from input, ignoring
// case.
func stripCommand(input, cmd string) string {
	i := strings.Index(strings.ToLower(input), cmd)
	if i < 0 {
		return input
	}
	return input[:i] + input[i+len(cmd):]
}

// scriptContent joins the content of every started component.
func scriptContent(s *script.ProjectState, sep string) string {
	var parts []string
	for _, k := range script.Kinds {
		if c := s.Component(k); c != nil && c.Content != "" {
			parts = append(parts, c.Content)
		}
	}
	return strings.Join(parts, sep)
}

// labelledScript renders each started component with its upper-case
// label using format, which receives the label and the content.
func labelledScript(s *script.ProjectState, format, sep string) string {
	labels := map[script.ComponentKind]string{script.KindHook: "HOOK", script.KindStory: "STORY", script.KindCTA: "CTA"}
	var parts []string
	for _, k := range script.Kinds {
		if c := s.Component(k); c != nil && c.Content != "" {
			parts = append(parts, fmt.Sprintf(format, labels[k], c.Content))
		}
	}
	return strings.Join(parts, sep)
}
