package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	appErrors "Tenure/internal/errors"
	"Tenure/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	IdempotencyHeader   = "Idempotency-Key"
	IdempotencyCacheTTL = 24 * time.Hour
	IdempotencyLockTTL  = 10 * time.Second
)

var ErrIdempotencyInProgress = appErrors.NewAppError("IDEMPOTENCY_IN_PROGRESS", "Uma requisição com esta chave de idempotência ainda está em processamento", http.StatusConflict)

type IdempotencyStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency reaproveita respostas 2xx já servidas para o mesmo Idempotency-Key
// e barra requisições simultâneas com a mesma chave. Sem store, apenas repassa.
func Idempotency(store IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if store == nil || key == "" {
			c.Next()
			return
		}

		// A chave é do cliente; prefixar com o usuário evita colisão entre contas.
		if userID := c.GetString(ContextUserID); userID != "" {
			key = userID + ":" + key
		}
		ctx := c.Request.Context()

		if raw, found, err := store.Get(ctx, key); err != nil {
			logger.Warn().Err(err).Msg("Falha ao consultar cache de idempotência")
		} else if found {
			var cached cachedResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				c.Header("X-Idempotency-Hit", "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		}

		acquired, err := store.Lock(ctx, key, IdempotencyLockTTL)
		if err != nil {
			logger.Error().Err(err).Msg("Falha ao adquirir lock de idempotência")
			abortWithError(c, appErrors.ErrInternalServer.WithError(err))
			return
		}
		if !acquired {
			abortWithError(c, ErrIdempotencyInProgress)
			return
		}
		defer func() {
			if err := store.Unlock(context.WithoutCancel(ctx), key); err != nil {
				logger.Warn().Err(err).Msg("Falha ao liberar lock de idempotência")
			}
		}()

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		payload, err := json.Marshal(cachedResponse{Status: status, Body: writer.body.Bytes()})
		if err != nil {
			return
		}
		if err := store.Save(context.WithoutCancel(ctx), key, payload, IdempotencyCacheTTL); err != nil {
			logger.Warn().Err(err).Msg("Falha ao gravar resposta idempotente")
		}
	}
}
