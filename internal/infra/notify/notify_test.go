package notify //nolint:testpackage // overriding provider endpoints for httptest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web_monitor_bot/internal/domain/channel"
	"web_monitor_bot/internal/infra/config"
)

var testMessage = channel.Message{
	Subject: "Website Update Detected",
	Body:    "1. NATATION | N123 | Initiation adultes\n",
}

func TestDiscordSend(t *testing.T) {
	var got discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDiscord(srv.URL)
	require.NoError(t, d.Send(context.Background(), testMessage))

	assert.Equal(t, testMessage.Body, got.Content)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "🚨 "+testMessage.Subject, got.Embeds[0].Title)
}

func TestDiscordSendRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid webhook token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewDiscord(srv.URL).Send(context.Background(), testMessage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid webhook token")
}

func TestSlackSend(t *testing.T) {
	var got slackPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, NewSlack(srv.URL).Send(context.Background(), testMessage))
	require.Len(t, got.Blocks, 1)
	assert.Equal(t, "mrkdwn", got.Blocks[0].Text.Type)
	assert.Contains(t, got.Blocks[0].Text.Text, testMessage.Body)
}

func TestWebhookSend(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, map[string]string{"Authorization": "Bearer secret"}, "https://example.org/activities")
	require.NoError(t, wh.Send(context.Background(), testMessage))

	assert.Equal(t, testMessage.Subject, got.Title)
	assert.Equal(t, testMessage.Body, got.Message)
	assert.Equal(t, "https://example.org/activities", got.URL)
}

func TestWebhookSendAcceptsSuccessStatuses(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusNoContent} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		err := NewWebhook(srv.URL, nil, "https://example.org").Send(context.Background(), testMessage)
		assert.NoError(t, err, "status %d", status)
		srv.Close()
	}
}

func TestMailgunSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "key-123", pass)
		assert.Equal(t, "/mg.example.org/messages", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ops@example.org", r.FormValue("to"))
		assert.Equal(t, testMessage.Subject, r.FormValue("subject"))
		assert.Equal(t, testMessage.Body, r.FormValue("text"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMailgun("mg.example.org", "key-123", "ops@example.org")
	m.apiBase = srv.URL
	require.NoError(t, m.Send(context.Background(), testMessage))
}

func TestSendGridSend(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewSendGrid("sg-key", "monitor@example.org", "ops@example.org")
	s.sendURL = srv.URL
	require.NoError(t, s.Send(context.Background(), testMessage))

	assert.Equal(t, testMessage.Subject, raw["subject"])
}

func TestTextbeltSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+33600000000", r.FormValue("phone"))
		assert.Equal(t, "textbelt", r.FormValue("key"), "free tier key is the default")
		json.NewEncoder(w).Encode(textbeltResponse{Success: true})
	}))
	defer srv.Close()

	tb := NewTextbelt("+33600000000", "")
	tb.sendURL = srv.URL
	require.NoError(t, tb.Send(context.Background(), testMessage))
}

func TestTextbeltSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Textbelt reports quota errors with HTTP 200 and success=false.
		json.NewEncoder(w).Encode(textbeltResponse{Success: false, Error: "Out of quota"})
	}))
	defer srv.Close()

	tb := NewTextbelt("+33600000000", "key")
	tb.sendURL = srv.URL
	err := tb.Send(context.Background(), testMessage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Out of quota")
}

func TestBuildConstructsOnlyConfiguredChannels(t *testing.T) {
	cfg := config.Channels{
		Discord:  &config.DiscordConfig{WebhookURL: "https://discord.example/webhook"},
		Slack:    &config.SlackConfig{WebhookURL: "https://hooks.slack.example/x"},
		Textbelt: &config.TextbeltConfig{ToNumber: "+33600000000"},
	}

	channels, err := Build(cfg, "https://example.org/activities")
	require.NoError(t, err)
	require.Len(t, channels, 3)

	names := make([]string, len(channels))
	for i, ch := range channels {
		names[i] = ch.Name()
	}
	assert.Equal(t, []string{"discord", "slack", "textbelt"}, names)
}

func TestBuildEmptyConfig(t *testing.T) {
	channels, err := Build(config.Channels{}, "https://example.org")
	require.NoError(t, err)
	assert.Empty(t, channels)
}

func TestChannelClasses(t *testing.T) {
	assert.Equal(t, channel.ClassChat, NewDiscord("").Class())
	assert.Equal(t, channel.ClassChat, NewSlack("").Class())
	assert.Equal(t, channel.ClassChat, NewWebhook("", nil, "").Class())
	assert.Equal(t, channel.ClassEmail, NewMailgun("", "", "").Class())
	assert.Equal(t, channel.ClassEmail, NewSendGrid("", "", "").Class())
	assert.Equal(t, channel.ClassEmail, NewSMTP("", 0, "", "", "", "").Class())
	assert.Equal(t, channel.ClassSMS, NewTwilio("", "", "", "").Class())
	assert.Equal(t, channel.ClassSMS, NewTextbelt("", "").Class())
	assert.Equal(t, channel.ClassSMS, NewSMSAPI("", "").Class())
}
