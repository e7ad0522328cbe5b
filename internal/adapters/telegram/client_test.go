package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	t.Parallel()

	var got sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:token/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient("123:token", server.Client(), zerolog.Nop(), WithBaseURL(server.URL))

	err := client.SendMessage(context.Background(), 42, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ChatID)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "Markdown", got.ParseMode)
}

func TestSendMessageAPIRejection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	client := NewClient("123:token", server.Client(), zerolog.Nop(), WithBaseURL(server.URL))

	err := client.SendMessage(context.Background(), 42, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestUpdateDecoding(t *testing.T) {
	t.Parallel()

	raw := `{
		"update_id": 7,
		"message": {
			"message_id": 11,
			"from": {"id": 1001, "username": "alice", "first_name": "Alice"},
			"chat": {"id": 1001},
			"text": "9876543210"
		}
	}`

	var update Update
	require.NoError(t, json.Unmarshal([]byte(raw), &update))
	require.NotNil(t, update.Message)
	require.NotNil(t, update.Message.From)
	assert.Equal(t, int64(1001), update.Message.From.ID)
	assert.Equal(t, "alice", update.Message.From.Username)
	assert.Equal(t, "9876543210", update.Message.Text)
}
