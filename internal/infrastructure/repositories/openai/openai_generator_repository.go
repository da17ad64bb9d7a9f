package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

const (
	generatorName      = "openai"
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = float32(0.2)
)

// OpenAIGeneratorRepository implements repositories.GeneratorRepository on any
// OpenAI-compatible chat completions endpoint (OpenAI, Ollama's /v1, vLLM...).
type OpenAIGeneratorRepository struct {
	client      *goopenai.Client
	baseURL     string
	model       string
	temperature float32
}

// NewOpenAIGeneratorRepository creates an OpenAI-compatible backend. The API key
// may be empty when BaseURL points at a local server such as Ollama.
func NewOpenAIGeneratorRepository(
	_ context.Context,
	settings entities.LLMSettings,
	httpClient *http.Client,
) (repositories.GeneratorRepository, error) {
	baseURL := strings.TrimRight(settings.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if settings.APIKey == "" && baseURL == defaultBaseURL {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is required for the openai provider", entities.ErrConfiguration)
	}

	config := goopenai.DefaultConfig(settings.APIKey)
	config.BaseURL = baseURL
	if httpClient != nil {
		config.HTTPClient = httpClient
	}

	model := settings.Model
	if model == "" {
		model = defaultModel
	}
	temperature := defaultTemperature
	if settings.Temperature != nil {
		temperature = *settings.Temperature
	}

	return &OpenAIGeneratorRepository{
		client:      goopenai.NewClientWithConfig(config),
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
	}, nil
}

func (g *OpenAIGeneratorRepository) Name() string { return generatorName }

// Generate sends the prompt as a single user message and returns the first choice.
func (g *OpenAIGeneratorRepository) Generate(ctx context.Context, prompt string) (string, error) {
	logger.Debugf("Sending %d bytes to %s model %s", len(prompt), g.baseURL, g.model)

	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: g.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: g.temperature,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		var requestErr *goopenai.RequestError
		switch {
		case errors.As(err, &apiErr):
			return "", fmt.Errorf("%w: model endpoint responded with status %d: %s",
				entities.ErrGeneration, apiErr.HTTPStatusCode, apiErr.Message)
		case errors.As(err, &requestErr):
			return "", fmt.Errorf("%w: model endpoint responded with status %s: %w",
				entities.ErrGeneration, requestErr.HTTPStatus, err)
		default:
			return "", fmt.Errorf("%w: failed to call %s: %w", entities.ErrGeneration, g.baseURL, err)
		}
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: model returned no content", entities.ErrGeneration)
	}
	return resp.Choices[0].Message.Content, nil
}
