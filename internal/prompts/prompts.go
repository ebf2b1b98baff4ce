package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed base.md
var Base string

//go:embed personas.yaml
var personasYAML []byte

// Persona describes one specialist agent.
type Persona struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Goal        string `yaml:"goal"`
	Backstory   string `yaml:"backstory"`
}

var personas = mustLoadPersonas()

func mustLoadPersonas() map[string]Persona {
	var p map[string]Persona
	if err := yaml.Unmarshal(personasYAML, &p); err != nil {
		panic(fmt.Sprintf("prompts: bad personas.yaml: %v", err))
	}
	return p
}

// PersonaFor returns the persona for an agent role.
func PersonaFor(role string) (Persona, bool) {
	p, ok := personas[role]
	return p, ok
}

// System builds the system prompt for an agent role.
func System(role string) string {
	p, ok := personas[role]
	if !ok {
		return strings.TrimSpace(Base)
	}
	r := strings.NewReplacer(
		"{{name}}", p.Name,
		"{{description}}", p.Description,
		"{{role}}", role,
		"{{goal}}", p.Goal,
		"{{backstory}}", p.Backstory,
	)
	return strings.TrimSpace(r.Replace(Base))
}
