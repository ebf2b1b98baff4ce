package prompts

import (
	"strings"
	"testing"
)

func TestSystem(t *testing.T) {
	roles := []string{"orchestrator", "hook", "story", "cta", "research", "stylist", "challenger"}
	for _, role := range roles {
		t.Run(role, func(t *testing.T) {
			p, ok := PersonaFor(role)
			if !ok {
				t.Fatalf("no persona for %s", role)
			}
			got := System(role)
			if !strings.Contains(got, p.Name) || !strings.Contains(got, "Role: "+role) {
				t.Errorf("System(%s) = %q", role, got)
			}
			if strings.Contains(got, "{{") {
				t.Errorf("System(%s) has unreplaced placeholders", role)
			}
		})
	}
}

func TestSystemUnknownRole(t *testing.T) {
	if got := System("nobody"); !strings.Contains(got, "Guidelines") {
		t.Errorf("System(nobody) = %q", got)
	}
}
