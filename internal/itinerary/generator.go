// Package itinerary builds itinerary generation requests from trip drafts,
// merges generated itineraries back, and provides the generators that produce
// them.
package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Agmahima/TravelEase/internal/models"
)

// Generator produces an itinerary. Implementations fail with
// *models.AuthenticationError, *models.RateLimitError or
// *models.GenerationError.
type Generator interface {
	Generate(ctx context.Context, req models.GenerateRequest) (models.Itinerary, error)
}

type GeneratorFunc func(ctx context.Context, req models.GenerateRequest) (models.Itinerary, error)

func (f GeneratorFunc) Generate(ctx context.Context, req models.GenerateRequest) (models.Itinerary, error) {
	return f(ctx, req)
}

const (
	ProviderBackend = "backend"
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
)

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewGenerator picks an implementation by provider name. The backend
// generator is supplied by the caller since it needs the HTTP client.
func NewGenerator(ctx context.Context, cfg Config, backend Generator) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderBackend:
		if backend == nil {
			return nil, errors.New("backend itinerary generator not configured")
		}
		return backend, nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required when using the openai provider")
		}
		return NewOpenAIGenerator(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is required when using the gemini provider")
		}
		g, err := NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unsupported itinerary provider: %s. Use 'backend', 'openai' or 'gemini'", cfg.Provider)
	}
}

const responseSchema = `{
  "destination": "string",
  "days": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "activities": [
        {"time":"09:00","title":"string","description":"string","location":"string","cost":"string","category":"morning","booked":false}
      ]
    }
  ]
}`

func buildPrompt(req models.GenerateRequest) string {
	var stops strings.Builder
	for i, d := range req.Destinations {
		fmt.Fprintf(&stops, "%d. %s for %d days\n", i+1, d.Location, d.DaysToStay)
	}
	var legs strings.Builder
	for _, l := range req.TransportationOptions {
		if l.FromIndex < len(req.Destinations) && l.ToIndex < len(req.Destinations) && l.FromIndex >= 0 && l.ToIndex >= 0 {
			fmt.Fprintf(&legs, "- %s to %s by %s\n", req.Destinations[l.FromIndex].Location, req.Destinations[l.ToIndex].Location, l.Mode)
		}
	}
	if legs.Len() == 0 {
		legs.WriteString("- none chosen\n")
	}

	return fmt.Sprintf(`Plan a day-by-day travel itinerary. Return JSON only that matches this schema:
%s

Trip:
- Primary destination: %s
- Dates: %s to %s
- Travellers: %d adults, %d children
- Budget: %s
- Travel style: %s
- Interests: %s
- Notes: %s

Stops in order:
%s
Transport between stops:
%s
Rules:
- One entry in "days" per calendar day, numbered from 1 with consecutive dates.
- 3 to 5 activities per day. category is one of morning, lunch, afternoon, evening.
- Put travel days between stops into the plan.
- No markdown, no comments.
`, responseSchema, req.Destination, req.StartDate, req.EndDate, req.Adults, req.Children,
		req.Preferences.Budget, orNone(req.Preferences.TravelStyle), orNone(strings.Join(req.Preferences.Interests, ", ")),
		orNone(req.Preferences.Notes), stops.String(), legs.String())
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}

// decodeItinerary parses an LLM reply into an itinerary.
func decodeItinerary(content string) (models.Itinerary, error) {
	content = cleanJSONResponse(content)
	var it models.Itinerary
	if err := json.Unmarshal([]byte(content), &it); err != nil {
		return models.Itinerary{}, &models.GenerationError{Err: fmt.Errorf("invalid itinerary JSON: %w", err)}
	}
	if len(it.Days) == 0 {
		return models.Itinerary{}, &models.GenerationError{Err: errors.New("itinerary has no days")}
	}
	return it, nil
}

// classifyStatus maps a provider HTTP status onto the generation error
// taxonomy.
func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &models.AuthenticationError{Message: err.Error()}
	case status == http.StatusTooManyRequests:
		return &models.RateLimitError{Message: err.Error()}
	}
	return classifyMessage(err)
}

func classifyMessage(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "quota"), strings.Contains(msg, "resourceexhausted"):
		return &models.RateLimitError{Message: err.Error()}
	case strings.Contains(msg, "api key"), strings.Contains(msg, "unauthenticated"), strings.Contains(msg, "permissiondenied"):
		return &models.AuthenticationError{Message: err.Error()}
	}
	return &models.GenerationError{Err: err}
}
