//go:build unit

package gemini_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/infrastructure/repositories/gemini"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestGeminiGeneratorRepository(t *testing.T) {
	t.Parallel()

	t.Run("should require an API key", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.LLMSettings{Provider: "gemini"}

		// when
		_, err := gemini.NewGeminiGeneratorRepository(context.Background(), settings, http.DefaultClient)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfiguration)
		assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
	})

	t.Run("should send the prompt to the default model and return its text", func(t *testing.T) {
		t.Parallel()

		// given
		var received map[string]any
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent"), r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &received)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"# Release notes"}]}}]}`)
		})
		generator, err := gemini.NewGeminiGeneratorRepository(context.Background(), entities.LLMSettings{
			Provider: "gemini",
			APIKey:   "test-key",
			BaseURL:  server.URL + "/",
		}, server.Client())
		require.NoError(t, err)

		// when
		text, err := generator.Generate(context.Background(), "Summarize these commits")

		// then
		require.NoError(t, err)
		assert.Equal(t, "# Release notes", text)
		assert.Equal(t, "gemini", generator.Name())
		assert.Contains(t, fmt.Sprint(received["contents"]), "Summarize these commits")
	})

	t.Run("should surface API failures as generation errors", func(t *testing.T) {
		t.Parallel()

		// given
		server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`)
		})
		generator, err := gemini.NewGeminiGeneratorRepository(context.Background(), entities.LLMSettings{
			APIKey:  "test-key",
			BaseURL: server.URL + "/",
		}, server.Client())
		require.NoError(t, err)

		// when
		_, err = generator.Generate(context.Background(), "prompt")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrGeneration)
	})

	t.Run("should reject an answer without text", func(t *testing.T) {
		t.Parallel()

		// given
		server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"candidates":[]}`)
		})
		generator, err := gemini.NewGeminiGeneratorRepository(context.Background(), entities.LLMSettings{
			APIKey:  "test-key",
			BaseURL: server.URL + "/",
		}, server.Client())
		require.NoError(t, err)

		// when
		_, err = generator.Generate(context.Background(), "prompt")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrGeneration)
	})
}
