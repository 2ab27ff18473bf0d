package models

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"SpiderSQLAgent/app/restclient"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) ClientConfig {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ClientConfig{
		BaseURL:     ts.URL,
		APIKey:      "test-key",
		Deployment:  "gpt-4o",
		Temperature: 0.3,
	}
}

func TestCompletion(t *testing.T) {
	cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Answer: 42"}}]}`))
	})

	client := NewLLMClient(cfg)
	reply, err := client.Completion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "Answer: 42", reply)
}

func TestCompletionAzureEndpoint(t *testing.T) {
	cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		assert.True(t, strings.HasPrefix(r.URL.Path, "/openai/deployments/gpt-4o/chat/completions"))
		assert.Equal(t, "2025-01-01-preview", r.URL.Query().Get("api-version"))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	})
	cfg.APIVersion = "2025-01-01-preview"

	client := NewLLMClient(cfg)
	reply, err := client.Completion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestCompletionEmptyChoices(t *testing.T) {
	cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	client := NewLLMClient(cfg)
	_, err := client.Completion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
}

func TestCompletionRetriesOnFailure(t *testing.T) {
	rc := &restclient.MockRestClient{}
	rc.On("Post", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]byte(nil), 0, errors.New("transport down"))

	client := &LLMClient{restClient: rc, endpoint: completionsEndpoint, deployment: "gpt-4o"}
	_, err := client.Completion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	rc.AssertNumberOfCalls(t, "Post", 3)
}

func TestCompletionCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &LLMClient{restClient: &restclient.MockRestClient{}, endpoint: completionsEndpoint}
	_, err := client.Completion(ctx, []Message{{Role: "user", Content: "hi"}})
	require.ErrorIs(t, err, context.Canceled)
}
