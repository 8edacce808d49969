package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "bot-token")
}

func TestRecentMessages(t *testing.T) {
	client := newChatFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/conversations.history", r.URL.Path)
		require.Equal(t, "C1", r.URL.Query().Get("channel"))
		require.Equal(t, "Bearer bot-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"messages":[{"user":"U1","text":"hello","ts":"2"},{"user":"U2","text":"hi","ts":"1"}]}`))
	})

	messages, err := client.RecentMessages(context.Background(), "C1", 5)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "U1", messages[0].UserID)
	assert.Equal(t, "hello", messages[0].Text)
}

func TestRecentMessagesPlatformError(t *testing.T) {
	client := newChatFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	})

	_, err := client.RecentMessages(context.Background(), "C1", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestOpenDM(t *testing.T) {
	client := newChatFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/conversations.open", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"channel":{"id":"D42"}}`))
	})

	channelID, err := client.OpenDM(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, "D42", channelID)
}

func TestPostMessageRejected(t *testing.T) {
	client := newChatFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":false,"error":"not_in_channel"}`))
	})

	err := client.PostMessage(context.Background(), "D42", "hi", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_in_channel")
}
