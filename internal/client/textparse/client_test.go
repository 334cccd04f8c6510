package textparse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "завтра в 10 созвон", req.Messages[1].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
			},
		})
	}))
}

func TestParseFreeText(t *testing.T) {
	srv := completionServer(t, "```json\n{\"title\": \"Созвон\", \"meet_start_at\": \"10:00\", \"meet_end_at\": null, "+
		"\"date\": null, \"weekday\": null, \"is_today\": false, \"is_tomorrow\": true, \"is_after_tomorrow\": null}\n```")
	defer srv.Close()

	client := NewClient(Config{APIKey: "key", BaseURL: srv.URL, Model: "test-model"}, zap.NewNop())
	slot, err := client.ParseFreeText(context.Background(), "завтра в 10 созвон")
	require.NoError(t, err)

	require.NotNil(t, slot.Title)
	assert.Equal(t, "Созвон", *slot.Title)
	require.NotNil(t, slot.StartTime)
	assert.Equal(t, "10:00", *slot.StartTime)
	assert.Nil(t, slot.EndTime)
	require.NotNil(t, slot.IsTomorrow)
	assert.True(t, *slot.IsTomorrow)
	assert.Nil(t, slot.IsAfterTomorrow)
}

func TestParseFreeText_InvalidJSON(t *testing.T) {
	srv := completionServer(t, "не знаю")
	defer srv.Close()

	client := NewClient(Config{APIKey: "key", BaseURL: srv.URL, Model: "test-model"}, zap.NewNop())
	_, err := client.ParseFreeText(context.Background(), "завтра в 10 созвон")
	require.Error(t, err)
}
