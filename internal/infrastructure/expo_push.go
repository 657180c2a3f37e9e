package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"Tenure/config"
	"Tenure/internal/domain/notification"
	"Tenure/internal/logger"
)

// O serviço de push do Expo aceita no máximo 100 mensagens por requisição.
const expoChunkSize = 100

type ExpoPusher struct {
	Endpoint    string
	AccessToken string
	Client      *http.Client
}

var _ notification.Pusher = (*ExpoPusher)(nil)

type expoMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Sound string            `json:"sound"`
	Data  map[string]string `json:"data,omitempty"`
}

type expoResponse struct {
	Data []struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

func NewExpoPusher(cfg config.PushConfig) *ExpoPusher {
	return &ExpoPusher{
		Endpoint:    cfg.Endpoint,
		AccessToken: cfg.AccessToken,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *ExpoPusher) Push(ctx context.Context, messages []notification.PushMessage) error {
	for start := 0; start < len(messages); start += expoChunkSize {
		end := start + expoChunkSize
		if end > len(messages) {
			end = len(messages)
		}
		if err := p.send(ctx, messages[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (p *ExpoPusher) send(ctx context.Context, chunk []notification.PushMessage) error {
	payload := make([]expoMessage, 0, len(chunk))
	for _, m := range chunk {
		payload = append(payload, expoMessage{To: m.To, Title: m.Title, Body: m.Body, Sound: "default", Data: m.Data})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.AccessToken)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("expo push: status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed expoResponse
	if err := json.Unmarshal(raw, &parsed); err == nil {
		for _, ticket := range parsed.Data {
			if ticket.Status == "error" {
				logger.Warn().Str("message", ticket.Message).Msg("Push rejeitado pelo Expo")
			}
		}
	}

	logger.Info().Int("messages", len(chunk)).Msg("Push enviado")
	return nil
}

// LogPusher só registra as notificações. Usado quando o push está desabilitado.
type LogPusher struct{}

func (LogPusher) Push(_ context.Context, messages []notification.PushMessage) error {
	logger.Info().Int("messages", len(messages)).Msg("Push desabilitado; notificações descartadas")
	return nil
}
