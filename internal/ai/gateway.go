package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/metrics"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"go.uber.org/zap"
)

type Gateway interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateStructuredContent(ctx context.Context, prompt string) (map[string]any, error)
	ParseRFPDocument(ctx context.Context, text string) (map[string]any, error)
	GenerateProposalContent(ctx context.Context, in ProposalInput) (map[string]any, error)
	RefineProposalSection(ctx context.Context, in RefineInput) (map[string]any, error)
	GenerateScorecard(ctx context.Context, in ScorecardInput) (map[string]any, error)
}

type GeminiGateway struct {
	generator TextGenerator
	logger    *zap.SugaredLogger
	timeout   time.Duration
}

func NewGeminiGateway(generator TextGenerator, timeout time.Duration, logger *zap.SugaredLogger) *GeminiGateway {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return &GeminiGateway{
		generator: generator,
		logger:    logger,
		timeout:   timeout,
	}
}

func (g *GeminiGateway) call(ctx context.Context, operation, prompt string, wantJSON bool) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.generator.GenerateText(ctx, prompt, wantJSON)
	metrics.ObserveAICall(operation, time.Since(start), err)
	if err != nil {
		g.logger.Errorw("AI call failed", "operation", operation, "error", err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	g.logger.Debugw("AI call finished", "operation", operation, "elapsed", time.Since(start), "chars", len(text))
	return text, nil
}

func (g *GeminiGateway) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return g.call(ctx, "generate_content", prompt, false)
}

func (g *GeminiGateway) GenerateStructuredContent(ctx context.Context, prompt string) (map[string]any, error) {
	return g.structured(ctx, "generate_structured", prompt)
}

func (g *GeminiGateway) structured(ctx context.Context, operation, prompt string) (map[string]any, error) {
	text, err := g.call(ctx, operation, prompt+jsonOnlyInstruction, true)
	if err != nil {
		return nil, err
	}

	out, err := ParseStructured(text)
	if err != nil {
		g.logger.Warnw("AI returned malformed json", "operation", operation, "error", err)
		return nil, err
	}
	return out, nil
}

func (g *GeminiGateway) ParseRFPDocument(ctx context.Context, text string) (map[string]any, error) {
	prompt, err := render(parseRFPPrompt, struct{ Text string }{text})
	if err != nil {
		return nil, err
	}
	return g.structured(ctx, "parse_rfp", prompt)
}

func (g *GeminiGateway) GenerateProposalContent(ctx context.Context, in ProposalInput) (map[string]any, error) {
	prompt, err := buildProposalPrompt(in)
	if err != nil {
		return nil, err
	}

	content, err := g.structured(ctx, "generate_proposal", prompt)
	if err != nil {
		return nil, err
	}

	if err := ValidateProposalContent(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (g *GeminiGateway) RefineProposalSection(ctx context.Context, in RefineInput) (map[string]any, error) {
	prompt, err := render(refinePrompt, in)
	if err != nil {
		return nil, err
	}

	out, err := g.structured(ctx, "refine_section", prompt)
	if err != nil {
		return nil, err
	}
	if _, ok := out["content"]; !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformedAIResponse, "content")
	}
	return out, nil
}

func (g *GeminiGateway) GenerateScorecard(ctx context.Context, in ScorecardInput) (map[string]any, error) {
	prompt, err := render(scorecardPrompt, in)
	if err != nil {
		return nil, err
	}

	out, err := g.structured(ctx, "scorecard", prompt)
	if err != nil {
		return nil, err
	}
	if _, err := ScoreFrom(out); err != nil {
		return nil, err
	}
	return out, nil
}
