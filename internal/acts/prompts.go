package acts

const researchPrompt = `Research the following topic for a video script about %s:
Topic to research: %s
Context: This is for Act %d of the video
Audience: %s

Provide:
1. 2-3 relevant statistics with sources
2. Current trends or insights
3. How to incorporate this into Act %d

Keep it concise and actionable.`

const examplesPrompt = `Suggest examples or case studies for:
Concept: %s
Video topic: %s
Act %d context
Audience: %s

Provide:
1. 2-3 specific examples or case studies
2. Key takeaways from each
3. How to present them visually

Make them relevant and engaging.`

const reviewPrompt = `Review this Act %d draft for a video about %s:

Draft:
%s

Provide:
1. 3 specific things that work well (be encouraging!)
2. 1-2 gentle suggestions for improvement
3. Motivation to continue

Be supportive and constructive. Use enthusiastic, positive language.`

const enhancePrompt = `Enhance this Act %d draft for a video about %s.

Original draft:
%s

Provide an enhanced version that:
1. Keeps the core message and structure
2. Improves clarity and impact
3. Adds vivid details or examples where appropriate
4. Strengthens emotional connections
5. Improves flow and transitions

Provide the complete enhanced draft, not just suggestions.`

const feedbackPrompt = `The user is asking for help with Act %d of their video about %s.

User's request: %s
Current draft: %s

Provide helpful, specific guidance. Be encouraging and constructive.`

const actPrompt = `
---

**🎬 Now let's develop Act %[1]d together!**

Great structure! Now let's bring Act %[1]d to life.

**🔥 Act %[1]d Focus:** %[2]s of content

**Your turn!** Share your ideas for Act %[1]d:
• What specific points will you cover?
• Any stats or examples in mind?
• Need me to research anything?

**Quick commands:**
• ` + "`draft: [your script]`" + ` - Share your script draft for feedback
• ` + "`enhance`" + ` - Improve your current draft
• ` + "`research: [topic]`" + ` - I'll find relevant data/statistics
• ` + "`example: [concept]`" + ` - I'll suggest case studies
• ` + "`next act`" + ` - Move to Act %[3]d when ready
• ` + "`show script`" + ` - See your complete script so far

What would you like to explore for Act %[1]d?`

const noDraftYet = "[No draft yet - start writing!]"
