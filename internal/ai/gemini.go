package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator is the transport under the gateway: one prompt in, raw model text out.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, wantJSON bool) (string, error)
}

type GeminiClient struct {
	client    *genai.Client
	textModel *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, cfg config.AIConfig) (*GeminiClient, error) {
	if cfg.GEMINI_API_KEY == "" {
		return nil, errors.New("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GEMINI_API_KEY))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	newModel := func() *genai.GenerativeModel {
		m := client.GenerativeModel(cfg.MODEL)
		m.SetTemperature(float32(cfg.Temperature))
		if cfg.MaxOutputToken > 0 {
			m.SetMaxOutputTokens(int32(cfg.MaxOutputToken))
		}
		return m
	}

	jsonModel := newModel()
	jsonModel.ResponseMIMEType = "application/json"

	return &GeminiClient{
		client:    client,
		textModel: newModel(),
		jsonModel: jsonModel,
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) GenerateText(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	model := g.textModel
	if wantJSON {
		model = g.jsonModel
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in candidate (finish reason %s)", candidate.FinishReason)
	}

	var result strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			result.WriteString(string(text))
		}
	}

	return result.String(), nil
}
