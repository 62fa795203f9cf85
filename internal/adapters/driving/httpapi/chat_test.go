package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

func TestServer_Chat(t *testing.T) {
	f := newAPIFixture(t, Config{}, &stubLLM{reply: "Hello there"})

	rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{
		"message": "Who did I talk to last week?",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var reply driving.AssistantReply
	decodeJSON(t, rec, &reply)
	assert.NotEmpty(t, reply.ThreadID)
	assert.Equal(t, "Hello there", reply.Message.Content)
}

func TestServer_Chat_ContinuesThread(t *testing.T) {
	f := newAPIFixture(t, Config{}, &stubLLM{reply: "Sure"})

	rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{"message": "First"})
	require.Equal(t, http.StatusOK, rec.Code)
	var first driving.AssistantReply
	decodeJSON(t, rec, &first)

	rec = f.do(t, http.MethodPost, "/api/chat", map[string]any{
		"threadId": first.ThreadID,
		"message":  "Second",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var second driving.AssistantReply
	decodeJSON(t, rec, &second)
	assert.Equal(t, first.ThreadID, second.ThreadID)
}

func TestServer_Chat_MissingMessage(t *testing.T) {
	f := newAPIFixture(t, Config{}, &stubLLM{reply: "Sure"})

	rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{"threadId": "t1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Chat_Unavailable(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{"message": "Hi"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_ChatStream(t *testing.T) {
	f := newAPIFixture(t, Config{}, &stubLLM{reply: "Streamed reply"})

	rec := f.do(t, http.MethodPost, "/api/chat/stream", map[string]any{
		"message": "Hi",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := parseSSE(t, rec.Body.String())
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, driving.AssistantEventDone, last.Type)
	assert.NotEmpty(t, last.ThreadID)

	var sawText bool
	for _, event := range events {
		if event.Type == driving.AssistantEventText {
			sawText = true
			assert.Equal(t, "Streamed reply", event.Text)
		}
	}
	assert.True(t, sawText)
}

func TestServer_ChatStream_ErrorEvent(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodPost, "/api/chat/stream", map[string]any{
		"message": "Hi",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	events := parseSSE(t, rec.Body.String())
	require.Len(t, events, 1)
	assert.Equal(t, driving.AssistantEventError, events[0].Type)
	assert.NotEmpty(t, events[0].Error)
}

// parseSSE decodes the data frames of an SSE response body.
func parseSSE(t *testing.T, body string) []driving.AssistantEvent {
	t.Helper()
	var events []driving.AssistantEvent
	for _, line := range strings.Split(body, "\n") {
		payload, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		var event driving.AssistantEvent
		require.NoError(t, json.Unmarshal([]byte(payload), &event))
		events = append(events, event)
	}
	return events
}
