package itinerary

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Agmahima/TravelEase/internal/models"
)

type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a chat-completion generator. baseURL is only set
// for proxies and tests.
func NewOpenAIGenerator(apiKey, model, baseURL string) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req models.GenerateRequest) (models.Itinerary, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a travel planner that replies with JSON only."},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.4,
	})
	if err != nil {
		return models.Itinerary{}, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return models.Itinerary{}, &models.GenerationError{Err: errors.New("no choices returned")}
	}

	return decodeItinerary(resp.Choices[0].Message.Content)
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, err)
	}
	return classifyMessage(err)
}
