package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// OpenAIClient generates through any OpenAI-compatible completion API.
type OpenAIClient struct {
	llm llms.Model
}

func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	llm, err := openai.New(openai.WithToken(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIClient{llm: llm}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	log.Printf("[INFO] Calling OpenAI model %s", model)

	messageHistory := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}

	resp, err := c.llm.GenerateContent(ctx, messageHistory,
		llms.WithModel(model),
		llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in generation response")
	}

	return resp.Choices[0].Content, nil
}
