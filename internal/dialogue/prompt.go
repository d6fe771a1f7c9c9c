package dialogue

import (
	"fmt"
	"strings"
)

// PromptBuilder helps construct the directives sent to the generation capability
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
	return &PromptBuilder{systemPrompt: systemPrompt}
}

// AddContext adds contextual information to the prompt
func (pb *PromptBuilder) AddContext(context string) *PromptBuilder {
	pb.context = append(pb.context, context)
	return pb
}

// AddFact adds a key-value fact to the prompt. Facts render in insertion
// order so the same inputs always produce the same prompt.
func (pb *PromptBuilder) AddFact(key, value string) *PromptBuilder {
	pb.facts = append(pb.facts, fact{key: key, value: value})
	return pb
}

// Build constructs the final prompt
func (pb *PromptBuilder) Build() string {
	parts := []string{pb.systemPrompt}

	if len(pb.facts) > 0 {
		parts = append(parts, "\n## Datos de la sesión:")
		for _, f := range pb.facts {
			parts = append(parts, fmt.Sprintf("- %s: %s", f.key, f.value))
		}
	}

	if len(pb.context) > 0 {
		parts = append(parts, "\n## Contexto:")
		for _, ctx := range pb.context {
			parts = append(parts, fmt.Sprintf("- %s", ctx))
		}
	}

	return strings.Join(parts, "\n")
}
