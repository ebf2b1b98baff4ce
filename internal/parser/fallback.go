package parser

import "strings"

type fallbackLine struct {
	keys []string
	text string
}

var hookFallbacks = []fallbackLine{
	{[]string{"problem", "agitation"}, "Stop wasting hours on repetitive tasks that drain your energy and kill your productivity."},
	{[]string{"curiosity"}, "There's a secret that top performers use to get 10x more done in half the time..."},
	{[]string{"statistic", "shock"}, "Studies show that 87% of people are doing this completely wrong. Are you one of them?"},
	{[]string{"question"}, "What if you could transform your workflow in just 5 minutes a day?"},
	{[]string{"story", "personal"}, "Six months ago, I was overwhelmed. Today, I run my business on autopilot. Here's how..."},
	{[]string{"benefit"}, "Discover the simple technique that's helping thousands achieve their goals faster."},
	{[]string{"visual", "familiar"}, "You've seen this a hundred times, but you've never noticed what's really going on."},
}

const hookDefault = "This one simple change transformed everything for me. Let me show you how."

var ctaFallbacks = []fallbackLine{
	{[]string{"subscribe", "follow"}, "Follow for more tips like this."},
	{[]string{"download", "free", "value"}, "Grab the free guide in the link below."},
	{[]string{"learn"}, "Learn the full method in the link below."},
	{[]string{"join", "community", "gentle"}, "Join the community and share your take in the comments."},
	{[]string{"visit", "direct"}, "Visit the link in bio to get started today."},
	{[]string{"comment"}, "Comment below with your biggest question."},
}

const ctaDefault = "Take the next step today. The link is below."

// FallbackHook returns a canned hook line for a hook type label, matched
// by case-insensitive substring.
func FallbackHook(typ string) string {
	return lookup(hookFallbacks, typ, hookDefault)
}

// FallbackCTA returns a canned call to action for a CTA type label.
func FallbackCTA(typ string) string {
	return lookup(ctaFallbacks, typ, ctaDefault)
}

func lookup(table []fallbackLine, typ, def string) string {
	t := strings.ToLower(typ)
	for _, f := range table {
		for _, k := range f.keys {
			if strings.Contains(t, k) {
				return f.text
			}
		}
	}
	return def
}
