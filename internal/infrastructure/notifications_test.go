package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"Tenure/config"
	"Tenure/internal/domain/notification"
	"Tenure/internal/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpoPusherChunksMessages(t *testing.T) {
	logger.Set(zerolog.Nop())

	var (
		mu     sync.Mutex
		chunks []int
		auth   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var batch []expoMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		mu.Lock()
		chunks = append(chunks, len(batch))
		auth = r.Header.Get("Authorization")
		mu.Unlock()
		_, _ = w.Write([]byte(`{"data":[{"status":"ok"}]}`))
	}))
	defer srv.Close()

	pusher := NewExpoPusher(config.PushConfig{Endpoint: srv.URL, AccessToken: "expo-token"})

	messages := make([]notification.PushMessage, 0, 150)
	for i := 0; i < 150; i++ {
		messages = append(messages, notification.PushMessage{
			To:    fmt.Sprintf("ExponentPushToken[%d]", i),
			Title: "Oi",
			Body:  "Corpo",
		})
	}
	require.NoError(t, pusher.Push(context.Background(), messages))

	assert.Equal(t, []int{100, 50}, chunks)
	assert.Equal(t, "Bearer expo-token", auth)
}

func TestExpoPusherReportsHTTPFailure(t *testing.T) {
	logger.Set(zerolog.Nop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	pusher := NewExpoPusher(config.PushConfig{Endpoint: srv.URL})
	err := pusher.Push(context.Background(), []notification.PushMessage{{To: "x", Title: "t", Body: "b"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestBuildMessageRendersTemplates(t *testing.T) {
	raw, err := buildMessage(defaultMailFrom, notification.WelcomeMail("nova@tenure.test", "Olga", "Nova", "s3nh@"))
	require.NoError(t, err)

	msg := string(raw)
	assert.Contains(t, msg, "To: nova@tenure.test\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "Olga invited you")
	assert.Contains(t, msg, "s3nh@")

	raw, err = buildMessage(defaultMailFrom, notification.ResetPasswordMail("a@tenure.test", "id", "tok", "https://app.tenure.test/reset?t=tok"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `href="https://app.tenure.test/reset?t=tok"`))
}

func TestRenderMailUnknownTemplate(t *testing.T) {
	_, err := renderMail(notification.Mail{To: "a@tenure.test", Template: "missing"})
	assert.Error(t, err)

	assert.Error(t, LogMailer{}.Send(context.Background(), notification.Mail{Template: "missing"}))
}
