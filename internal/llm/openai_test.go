package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeResponseBody = `{
  "id": "resp_1",
  "object": "response",
  "created_at": 1700000000,
  "model": "gpt-4o-mini",
  "status": "completed",
  "output": [{
    "type": "message",
    "id": "msg_1",
    "role": "assistant",
    "status": "completed",
    "content": [{"type": "output_text", "text": "{\"text\":\"hello\",\"keywords\":[]}", "annotations": []}]
  }]
}`

func openAITestConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Provider = ProviderOpenAI
	cfg.Model = "gpt-4o-mini"
	cfg.APIKey = "test-key"
	cfg.Endpoint = endpoint
	return cfg
}

func TestOpenAIClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/responses"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "gpt-4o-mini", req["model"])
		assert.Equal(t, "be kind", req["instructions"])

		text, ok := req["text"].(map[string]any)
		require.True(t, ok, "structured output format expected")
		format := text["format"].(map[string]any)
		assert.Equal(t, "json_schema", format["type"])
		assert.Equal(t, "narrative", format["name"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fakeResponseBody))
	}))
	defer srv.Close()

	var captured LLMCallEvent
	client := NewOpenAIClient(openAITestConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskNarrative,
		SystemPrompt: "be kind",
		UserPrompt:   "hi",
		Schema:       map[string]any{"type": "object"},
		SchemaName:   "narrative",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"text":"hello","keywords":[]}`, resp.Text)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, ProviderOpenAI, captured.Provider)
	assert.True(t, captured.Success)
}

func TestOpenAIClient_Generate_ClientErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	cfg := openAITestConfig(srv.URL)
	cfg.MaxRetries = 2

	client := NewOpenAIClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskNarrative, UserPrompt: "hi"})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOpenAIClient_Generate_ServerErrorRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		w.Write([]byte(fakeResponseBody))
	}))
	defer srv.Close()

	cfg := openAITestConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewOpenAIClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskNarrative, UserPrompt: "hi"})

	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOpenAIClient_Available(t *testing.T) {
	cfg := openAITestConfig("")
	assert.True(t, NewOpenAIClient(cfg, nil).Available(context.Background()))

	cfg.APIKey = ""
	assert.False(t, NewOpenAIClient(cfg, nil).Available(context.Background()))
}
