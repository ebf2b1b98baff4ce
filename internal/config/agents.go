package config

// Agent roles. Each role gets its own generation parameters.
const (
	RoleOrchestrator = "orchestrator"
	RoleHook         = "hook"
	RoleStory        = "story"
	RoleCTA          = "cta"
	RoleResearch     = "research"
	RoleStylist      = "stylist"
	RoleChallenger   = "challenger"
)

type AgentParams struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

func DefaultAgentParams() map[string]AgentParams {
	return map[string]AgentParams{
		RoleOrchestrator: {Temperature: 0.3, MaxTokens: 4096},
		RoleHook:         {Temperature: 0.8, MaxTokens: 2048},
		RoleStory:        {Temperature: 0.6, MaxTokens: 4096},
		RoleCTA:          {Temperature: 0.4, MaxTokens: 1024},
		RoleResearch:     {Temperature: 0.1, MaxTokens: 4096},
		RoleStylist:      {Temperature: 0.7, MaxTokens: 2048},
		RoleChallenger:   {Temperature: 0.5, MaxTokens: 2048},
	}
}

// Params returns the parameters for role, falling back to the defaults.
func (c *Config) Params(role string) AgentParams {
	if p, ok := c.Agents[role]; ok && p.MaxTokens > 0 {
		return p
	}
	if p, ok := DefaultAgentParams()[role]; ok {
		return p
	}
	return AgentParams{Temperature: 0.7, MaxTokens: 2048}
}
