package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider on any OpenAI-compatible chat
// completions endpoint (OpenAI itself, or a local server via base URL).
type OpenAIProvider struct {
	client    *openai.Client
	modelName string
}

// NewOpenAIProvider creates the provider. baseURL may be empty for the
// default OpenAI endpoint.
func NewOpenAIProvider(apiKey, baseURL, modelName string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(cfg),
		modelName: modelName,
	}
}

// Generate implements Provider.
func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.System},
	}
	for _, turn := range req.History {
		role := openai.ChatMessageRoleUser
		if turn.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserText,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.modelName,
		Messages:    messages,
		MaxTokens:   120,
		Temperature: 0.8,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
