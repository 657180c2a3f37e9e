package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"Tenure/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryIdempotencyStore struct {
	mu     sync.Mutex
	values map[string][]byte
	locks  map[string]bool
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{values: map[string][]byte{}, locks: map[string]bool{}}
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryIdempotencyStore) Save(_ context.Context, key string, body []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = body
	return nil
}

func (s *memoryIdempotencyStore) Lock(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[key] {
		return false, nil
	}
	s.locks[key] = true
	return true, nil
}

func (s *memoryIdempotencyStore) Unlock(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
	return nil
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryIdempotencyStore()
	calls := 0

	router := gin.New()
	router.POST("/gift", middleware.Idempotency(store), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"call": calls})
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/gift", nil)
		req.Header.Set(middleware.IdempotencyHeader, "abc")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	first := send()
	second := send()

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, calls)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
}

func TestIdempotency_DoesNotCacheErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryIdempotencyStore()
	calls := 0

	router := gin.New()
	router.POST("/gift", middleware.Idempotency(store), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusBadRequest, gin.H{"error": "INSUFFICIENT_FUNDS"})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/gift", nil)
		req.Header.Set(middleware.IdempotencyHeader, "abc")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, 2, calls)
}

func TestIdempotency_ConcurrentDuplicateIsRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryIdempotencyStore()
	_, _ = store.Lock(context.Background(), "abc", time.Second)

	router := gin.New()
	router.POST("/gift", middleware.Idempotency(store), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/gift", nil)
	req.Header.Set(middleware.IdempotencyHeader, "abc")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "IDEMPOTENCY_IN_PROGRESS")
}

func TestIdempotency_NilStorePassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/gift", middleware.Idempotency(nil), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/gift", nil)
	req.Header.Set(middleware.IdempotencyHeader, "abc")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)
}
