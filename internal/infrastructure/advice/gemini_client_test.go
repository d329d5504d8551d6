package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"mediconnect/config"
	"mediconnect/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	client, err := NewGeminiClient(&config.AdviceConfig{
		APIKey:       "test-key",
		Model:        "test-model",
		BaseURL:      server.URL,
		SystemPrompt: "be kind",
		Timeout:      time.Second,
		RateLimitRPM: -1,
	}, log)
	require.NoError(t, err)
	return client
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(&config.AdviceConfig{}, logrus.New())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateAdvice_SendsHistoryAndParsesReply(t *testing.T) {
	var received generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.RawQuery)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Drink "},{"text":"water."}]}}]}`))
	})

	history := []entity.ChatMessage{
		{Role: entity.ChatRoleUser, Text: "hi"},
		{Role: entity.ChatRoleModel, Text: "hello"},
	}
	reply, err := client.GenerateAdvice(context.Background(), history, "I have a headache")
	require.NoError(t, err)
	assert.Equal(t, "Drink water.", reply)

	require.NotNil(t, received.SystemInstruction)
	assert.Equal(t, "be kind", received.SystemInstruction.Parts[0].Text)
	require.Len(t, received.Contents, 3)
	assert.Equal(t, "model", received.Contents[1].Role)
	assert.Equal(t, "user", received.Contents[2].Role)
	assert.Equal(t, "I have a headache", received.Contents[2].Parts[0].Text)
}

func TestGenerateAdvice_NoCandidatesIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	reply, err := client.GenerateAdvice(context.Background(), nil, "hello")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestGenerateAdvice_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GenerateAdvice(context.Background(), nil, "hello")
	assert.Error(t, err)
}

func TestGenerateAdvice_TransportErrorDoesNotLeakKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)
	client, err := NewGeminiClient(&config.AdviceConfig{
		APIKey:       "SECRET-KEY-123",
		Model:        "test-model",
		BaseURL:      baseURL,
		Timeout:      time.Second,
		RateLimitRPM: -1,
	}, log)
	require.NoError(t, err)

	_, err = client.GenerateAdvice(context.Background(), nil, "hello")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-KEY-123")
	assert.NotContains(t, fmt.Sprintf("%+v", err), "SECRET-KEY-123")
}

func TestGenerateAdvice_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 8; i++ {
		_, err := client.GenerateAdvice(context.Background(), nil, "hello")
		assert.Error(t, err)
	}
	assert.Equal(t, int32(5), calls.Load(), "requests stop reaching the server once the breaker is open")
}
