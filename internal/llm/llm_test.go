package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req groqRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3-8b-8192", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, 2000, req.MaxTokens)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"generated resume"}}]}`))
	}))
	defer srv.Close()

	gen := NewGroqGenerator("llama3-8b-8192", "test-key", srv.URL)
	text, err := gen.Generate(context.Background(), "tailor my resume")
	require.NoError(t, err)
	assert.Equal(t, "generated resume", text)
}

func TestGroqGenerateNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	gen := NewGroqGenerator("llama3-8b-8192", "test-key", srv.URL)
	_, err := gen.Generate(context.Background(), "prompt")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "groq", provErr.Provider)
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
	assert.Equal(t, "rate limited", provErr.Message, "structured upstream message is parsed, not the raw body")
}

func TestTogetherGenerateNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	gen := NewTogetherGenerator("mistral-7b", "test-key", srv.URL)
	_, err := gen.Generate(context.Background(), "prompt")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "together", provErr.Provider)
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
	assert.Equal(t, "invalid api key", provErr.Message)
}

func TestGroqGenerateMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	gen := NewGroqGenerator("llama3-8b-8192", "test-key", srv.URL)
	_, err := gen.Generate(context.Background(), "prompt")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
}

func TestTogetherGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/completions", r.URL.Path)

		var req togetherRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "write a cover letter", req.Prompt)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"text":"cover letter text"}]}`))
	}))
	defer srv.Close()

	gen := NewTogetherGenerator("mistral-7b", "test-key", srv.URL)
	text, err := gen.Generate(context.Background(), "write a cover letter")
	require.NoError(t, err)
	assert.Equal(t, "cover letter text", text)
}

func TestHuggingFaceGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gpt2", r.URL.Path)

		var req huggingFaceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "answer questions", req.Inputs)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"generated_text":"the answers"}]`))
	}))
	defer srv.Close()

	gen := NewHuggingFaceGenerator("gpt2", "test-key", srv.URL)
	text, err := gen.Generate(context.Background(), "answer questions")
	require.NoError(t, err)
	assert.Equal(t, "the answers", text)
}

func TestHuggingFaceGenerateEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	gen := NewHuggingFaceGenerator("gpt2", "test-key", srv.URL)
	_, err := gen.Generate(context.Background(), "prompt")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "huggingface", provErr.Provider)
}

func TestNewFailsFastOnUnknownProvider(t *testing.T) {
	_, err := New(&config.LLMConfig{Provider: "openai"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	for _, provider := range []string{"groq", "together", "huggingface"} {
		_, err := New(&config.LLMConfig{Provider: provider, Model: "m", APIKey: "k"})
		assert.NoError(t, err, provider)
	}
}
