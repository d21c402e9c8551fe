package itinerary

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Agmahima/TravelEase/internal/models"
)

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req models.GenerateRequest) (models.Itinerary, error) {
	m := g.client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.4)

	resp, err := m.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return models.Itinerary{}, classifyGeminiError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.Itinerary{}, &models.GenerationError{Err: errors.New("no content generated by Gemini")}
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return decodeItinerary(content)
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

type httpCoder interface {
	HTTPCode() int
}

func classifyGeminiError(err error) error {
	var hc httpCoder
	if errors.As(err, &hc) && hc.HTTPCode() > 0 {
		return classifyStatus(hc.HTTPCode(), err)
	}
	return classifyMessage(err)
}
