package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider on the Gemini API.
type GeminiProvider struct {
	client    *genai.Client
	modelName string
}

// NewGeminiProvider creates a Gemini-backed provider using an API key.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, modelName: modelName}, nil
}

// Generate implements Provider.
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	var contents []*genai.Content
	for _, turn := range req.History {
		var role genai.Role = genai.RoleUser
		if turn.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(req.UserText, genai.RoleUser))

	temp := float32(0.8)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   int32(120),
	}

	res, err := p.client.Models.GenerateContent(ctx, p.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := res.Text()
	if text == "" {
		return "", errors.New("gemini returned empty text")
	}
	return text, nil
}
