package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryBroker mantém os jobs em canais locais. Útil em desenvolvimento e testes;
// os jobs se perdem quando o processo termina.
type MemoryBroker struct {
	mu     sync.Mutex
	queues map[string]chan []byte
	size   int
}

func NewMemoryBroker(size int) *MemoryBroker {
	if size < 1 {
		size = 1024
	}
	return &MemoryBroker{
		queues: make(map[string]chan []byte),
		size:   size,
	}
}

func (b *MemoryBroker) channel(queue string) chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.queues[queue]
	if !ok {
		ch = make(chan []byte, b.size)
		b.queues[queue] = ch
	}
	return ch
}

func (b *MemoryBroker) Push(ctx context.Context, queue string, data []byte) error {
	select {
	case b.channel(queue) <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *MemoryBroker) Pop(ctx context.Context, queue string, timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case data := <-b.channel(queue):
		return data, nil
	case <-timer.C:
		return nil, ErrEmpty
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *MemoryBroker) Len(_ context.Context, queue string) (int64, error) {
	return int64(len(b.channel(queue))), nil
}
