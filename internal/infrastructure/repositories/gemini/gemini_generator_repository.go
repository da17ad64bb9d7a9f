package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	logger "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

const (
	generatorName      = "gemini"
	defaultModel       = "gemini-2.0-flash"
	defaultTemperature = float32(0.2)
)

// GeminiGeneratorRepository implements repositories.GeneratorRepository on the
// Gemini API.
type GeminiGeneratorRepository struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiGeneratorRepository creates a Gemini backend. BaseURL is only set
// when pointing at a proxy or a test server.
func NewGeminiGeneratorRepository(
	ctx context.Context,
	settings entities.LLMSettings,
	httpClient *http.Client,
) (repositories.GeneratorRepository, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_API_KEY or GEMINI_API_KEY is required for the gemini provider",
			entities.ErrConfiguration)
	}

	config := &genai.ClientConfig{
		APIKey:     settings.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if settings.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: settings.BaseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %w", entities.ErrConfiguration, err)
	}

	model := settings.Model
	if model == "" {
		model = defaultModel
	}
	temperature := defaultTemperature
	if settings.Temperature != nil {
		temperature = *settings.Temperature
	}

	return &GeminiGeneratorRepository{client: client, model: model, temperature: temperature}, nil
}

func (g *GeminiGeneratorRepository) Name() string { return generatorName }

// Generate sends the prompt as a single, non-streaming request.
func (g *GeminiGeneratorRepository) Generate(ctx context.Context, prompt string) (string, error) {
	logger.Debugf("Sending %d bytes to Gemini model %s", len(prompt), g.model)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: Gemini returned %d %s: %w", entities.ErrGeneration, apiErr.Code, apiErr.Status, err)
		}
		return "", fmt.Errorf("%w: failed to call Gemini: %w", entities.ErrGeneration, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: Gemini returned no text", entities.ErrGeneration)
	}
	return text, nil
}
