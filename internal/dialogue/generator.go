package dialogue

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
)

// Generator produces one reply from a system directive and a user directive.
// Implementations are treated as opaque; any compatible provider works.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// OpenAIGenerator generates replies through the OpenAI chat completions API
// with a fixed model and sampling temperature.
type OpenAIGenerator struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIGenerator creates a generator using the given client and tuning
func NewOpenAIGenerator(client openai.Client, tuning Tuning) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:      client,
		model:       tuning.Model,
		temperature: tuning.Temperature,
	}
}

// Generate requests a single non-streamed completion
func (g *OpenAIGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
