package agent

import (
	"fmt"
	"strings"
)

// PromptBuilder helps construct deterministic prompts for agents
type PromptBuilder struct {
	systemPrompt string
	context      []string
	facts        []fact
}

type fact struct {
	key   string
	value string
}

// NewPromptBuilder creates a new prompt builder with a base system prompt
func NewPromptBuilder(systemPrompt string) *PromptBuilder {
	return &PromptBuilder{
		systemPrompt: systemPrompt,
		context:      make([]string, 0),
	}
}

// AddContext adds contextual information to the prompt
func (pb *PromptBuilder) AddContext(context string) *PromptBuilder {
	pb.context = append(pb.context, context)
	return pb
}

// AddFact adds a key-value fact to the prompt. Facts render in insertion
// order; adding an existing key replaces its value in place
func (pb *PromptBuilder) AddFact(key, value string) *PromptBuilder {
	for i := range pb.facts {
		if pb.facts[i].key == key {
			pb.facts[i].value = value
			return pb
		}
	}
	pb.facts = append(pb.facts, fact{key: key, value: value})
	return pb
}

// Build constructs the final prompt
func (pb *PromptBuilder) Build() string {
	var parts []string

	// Start with system prompt
	parts = append(parts, pb.systemPrompt)

	if len(pb.facts) > 0 {
		parts = append(parts, "\n## Key Facts:")
		for _, f := range pb.facts {
			parts = append(parts, fmt.Sprintf("- %s: %s", f.key, f.value))
		}
	}

	if len(pb.context) > 0 {
		parts = append(parts, "\n## Recent Context:")
		for _, ctx := range pb.context {
			parts = append(parts, fmt.Sprintf("- %s", ctx))
		}
	}

	return strings.Join(parts, "\n")
}
