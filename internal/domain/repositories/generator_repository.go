package repositories

import "context"

// GeneratorRepository turns a prompt into release-note markdown using a hosted
// language model. A single blocking call, no streaming.
type GeneratorRepository interface {
	// Name returns the backend identifier (e.g. "gemini", "openai").
	Name() string

	// Generate sends the prompt and returns the model's text verbatim.
	Generate(ctx context.Context, prompt string) (string, error)
}
