package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"Tenure/internal/logger"
	"Tenure/internal/queue"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, maxAttempts int) *queue.Service {
	t.Helper()
	logger.Set(zerolog.Nop())
	svc := queue.NewService(queue.NewMemoryBroker(16), queue.Options{
		Name:        "test",
		Workers:     2,
		MaxAttempts: maxAttempts,
		PollTimeout: 20 * time.Millisecond,
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = svc.Stop(ctx)
	})
	return svc
}

func TestMemoryBrokerPushPop(t *testing.T) {
	b := queue.NewMemoryBroker(2)
	ctx := context.Background()

	require.NoError(t, b.Push(ctx, "q", []byte("a")))
	n, err := b.Len(ctx, "q")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	data, err := b.Pop(ctx, "q", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	_, err = b.Pop(ctx, "q", 10*time.Millisecond)
	assert.ErrorIs(t, err, queue.ErrEmpty)
}

func TestServiceProcessesJobs(t *testing.T) {
	svc := newTestService(t, 3)

	var (
		mu  sync.Mutex
		got []string
	)
	svc.Register("greet", func(ctx context.Context, payload json.RawMessage) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			return err
		}
		mu.Lock()
		got = append(got, body.Name)
		mu.Unlock()
		return nil
	})
	svc.Start()

	require.NoError(t, svc.Enqueue(context.Background(), "greet", map[string]string{"name": "ana"}))
	require.NoError(t, svc.Enqueue(context.Background(), "greet", map[string]string{"name": "beto"}))

	require.Eventually(t, func() bool {
		return svc.Stats(context.Background()).Processed == 2
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.ElementsMatch(t, []string{"ana", "beto"}, got)
	mu.Unlock()

	stats := svc.Stats(context.Background())
	assert.Equal(t, "test", stats.Queue)
	assert.EqualValues(t, 2, stats.Enqueued)
	assert.Zero(t, stats.Failed)
}

func TestServiceRetriesUntilMaxAttempts(t *testing.T) {
	svc := newTestService(t, 3)

	var (
		mu    sync.Mutex
		calls int
	)
	svc.Register("flaky", func(ctx context.Context, payload json.RawMessage) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("boom")
	})
	svc.Start()

	require.NoError(t, svc.Enqueue(context.Background(), "flaky", nil))

	require.Eventually(t, func() bool {
		return svc.Stats(context.Background()).Failed == 1
	}, time.Second, 10*time.Millisecond)

	stats := svc.Stats(context.Background())
	assert.EqualValues(t, 2, stats.Retried)
	assert.Zero(t, stats.Processed)
	mu.Lock()
	assert.Equal(t, 3, calls)
	mu.Unlock()
}

func TestServiceRecoversAfterTransientFailure(t *testing.T) {
	svc := newTestService(t, 3)

	var (
		mu    sync.Mutex
		calls int
	)
	svc.Register("once", func(ctx context.Context, payload json.RawMessage) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return errors.New("temporário")
		}
		return nil
	})
	svc.Start()

	require.NoError(t, svc.Enqueue(context.Background(), "once", nil))

	require.Eventually(t, func() bool {
		return svc.Stats(context.Background()).Processed == 1
	}, time.Second, 10*time.Millisecond)
	assert.EqualValues(t, 1, svc.Stats(context.Background()).Retried)
}

func TestServiceCountsUnknownJobs(t *testing.T) {
	svc := newTestService(t, 1)
	svc.Start()

	require.NoError(t, svc.Enqueue(context.Background(), "nobody.handles.this", nil))

	require.Eventually(t, func() bool {
		return svc.Stats(context.Background()).Unknown == 1
	}, time.Second, 10*time.Millisecond)
}

func TestEnqueueRejectsUnencodablePayload(t *testing.T) {
	svc := newTestService(t, 1)

	err := svc.Enqueue(context.Background(), "bad", make(chan int))
	assert.Error(t, err)
	assert.Zero(t, svc.Stats(context.Background()).Enqueued)
}

func TestStopIsIdempotent(t *testing.T) {
	svc := newTestService(t, 1)
	svc.Start()
	svc.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.Stop(ctx))
	require.NoError(t, svc.Stop(ctx))
}

func TestRetryDoesNotBlockOnFullBroker(t *testing.T) {
	logger.Set(zerolog.Nop())
	svc := queue.NewService(queue.NewMemoryBroker(1), queue.Options{
		Name:        "full",
		Workers:     1,
		MaxAttempts: 3,
		PollTimeout: 20 * time.Millisecond,
		PushTimeout: 50 * time.Millisecond,
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = svc.Stop(ctx)
	})

	// O handler ocupa a única vaga do broker antes de falhar, então o retry não tem onde entrar.
	svc.Register("fill", func(ctx context.Context, payload json.RawMessage) error {
		if err := svc.Enqueue(ctx, "filler", nil); err != nil {
			return err
		}
		return errors.New("boom")
	})
	svc.Start()

	require.NoError(t, svc.Enqueue(context.Background(), "fill", nil))

	require.Eventually(t, func() bool {
		stats := svc.Stats(context.Background())
		return stats.Failed == 1 && stats.Unknown == 1
	}, 2*time.Second, 10*time.Millisecond)
}
