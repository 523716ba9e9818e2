package imagegen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// DefaultGeminiModel is the image-capable Gemini model used when none is
// configured.
const DefaultGeminiModel = "gemini-2.0-flash-preview-image-generation"

// GeminiGenerator produces icons through the Gemini API. The underlying
// client reads GEMINI_API_KEY from the environment.
type GeminiGenerator struct {
	cli   *genai.Client
	model string
}

var _ Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a Gemini-backed Generator.
func NewGeminiGenerator(ctx context.Context, model string) (*GeminiGenerator, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	return &GeminiGenerator{cli: cli, model: model}, nil
}

// Generate asks the model for an image part and returns its bytes.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no image returned")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, errors.New("response contained no image data")
}
