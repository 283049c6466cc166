package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model identifier is configured
const DefaultGeminiModel = "gemini-1.5-flash"

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY not set")

// GeminiGenerator is a TextGenerator backed by the Gemini API
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a Gemini client for the given API key
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{client: client}, nil
}

// Close releases the underlying client
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// GenerateText requests a JSON response for the prompt
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	name := cfg.Model
	if name == "" {
		name = DefaultGeminiModel
	}

	model := g.client.GenerativeModel(name)
	model.SetTemperature(cfg.Temperature)
	if cfg.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(cfg.MaxOutputTokens)
	}
	model.ResponseMIMEType = "application/json"
	if cfg.SystemInstruction != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(cfg.SystemInstruction))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("gemini blocked prompt: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}

	result := text.String()
	if result == "" {
		return "", fmt.Errorf("gemini returned empty content")
	}
	return result, nil
}
