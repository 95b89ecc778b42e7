package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gateway sends a prompt to the generative service and returns its raw reply
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiConfig configures the Gemini-backed gateway
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Logger  *slog.Logger
}

type GeminiGateway struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  *slog.Logger
}

func NewGeminiGateway(ctx context.Context, cfg GeminiConfig) (*GeminiGateway, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0.7)

	return &GeminiGateway{
		client:  client,
		model:   model,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}, nil
}

// Generate performs a single round trip bounded by the configured timeout.
// Any failure is returned as an UpstreamError.
func (g *GeminiGateway) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.logger.Error("Gemini request failed", "error", err, "duration", time.Since(start).String())
		return "", upstream("request", err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			g.logger.Warn("Gemini candidate did not finish cleanly",
				"candidate", i,
				"finish_reason", cand.FinishReason.String())
		}
	}

	text := extractText(resp)
	if text == "" {
		return "", upstream("request", errors.New("empty response from generative service"))
	}

	g.logger.Debug("Gemini request completed",
		"duration", time.Since(start).String(),
		"response_length", len(text))
	return text, nil
}

func (g *GeminiGateway) Close() error {
	return g.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		// first candidate only
		break
	}
	return b.String()
}
