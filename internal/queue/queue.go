package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"Tenure/internal/logger"
	"Tenure/internal/pkg"
)

// ErrEmpty é devolvido pelo Broker quando nenhum job chegou dentro do timeout.
var ErrEmpty = errors.New("queue: empty")

type Job struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

type Handler func(ctx context.Context, payload json.RawMessage) error

// Broker é o transporte da fila (lista Redis em produção, canal em memória localmente).
type Broker interface {
	Push(ctx context.Context, queue string, data []byte) error
	Pop(ctx context.Context, queue string, timeout time.Duration) ([]byte, error)
	Len(ctx context.Context, queue string) (int64, error)
}

type Options struct {
	Name        string
	Workers     int
	MaxAttempts int
	PollTimeout time.Duration
	// PushTimeout limita o reenfileiramento de um job que falhou.
	PushTimeout time.Duration
}

type Stats struct {
	Queue       string `json:"queue"`
	Workers     int    `json:"workers"`
	Pending     int64  `json:"pending"`
	Enqueued    uint64 `json:"enqueued"`
	Processed   uint64 `json:"processed"`
	Failed      uint64 `json:"failed"`
	Retried     uint64 `json:"retried"`
	Unknown     uint64 `json:"unknown"`
	AvgDuration int64  `json:"avgDurationMs"`
}

type Service struct {
	broker   Broker
	opts     Options
	handlers map[string]Handler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu              sync.RWMutex
	started         bool
	enqueued        uint64
	processed       uint64
	failed          uint64
	retried         uint64
	unknown         uint64
	processDuration uint64
}

func NewService(broker Broker, opts Options) *Service {
	if opts.Name == "" {
		opts.Name = "default"
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 2 * time.Second
	}
	if opts.PushTimeout <= 0 {
		opts.PushTimeout = 5 * time.Second
	}
	return &Service{
		broker:   broker,
		opts:     opts,
		handlers: make(map[string]Handler),
	}
}

func (s *Service) Register(name string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = h
}

func (s *Service) Enqueue(ctx context.Context, name string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("queue: payload inválido para %s: %w", name, err)
	}
	job := Job{
		ID:         pkg.GenerateULID(),
		Name:       name,
		Payload:    raw,
		EnqueuedAt: time.Now(),
	}
	if err := s.push(ctx, job); err != nil {
		return err
	}

	s.mu.Lock()
	s.enqueued++
	s.mu.Unlock()

	logger.Debug().Str("job_id", job.ID).Str("job", name).Msg("Job enfileirado")
	return nil
}

func (s *Service) push(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.broker.Push(ctx, s.opts.Name, data)
}

func (s *Service) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.mu.Unlock()

	logger.Info().Str("queue", s.opts.Name).Int("workers", s.opts.Workers).Msg("Iniciando workers da fila")
	for i := 0; i < s.opts.Workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info().Str("queue", s.opts.Name).Msg("Workers da fila encerrados")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		data, err := s.broker.Pop(s.ctx, s.opts.Name, s.opts.PollTimeout)
		if err != nil {
			if errors.Is(err, ErrEmpty) || s.ctx.Err() != nil {
				continue
			}
			logger.Error().Err(err).Int("worker_id", id).Msg("Erro ao consumir fila")
			select {
			case <-time.After(time.Second):
			case <-s.ctx.Done():
			}
			continue
		}

		s.process(id, data)
	}
}

func (s *Service) process(workerID int, data []byte) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		s.mu.Lock()
		s.failed++
		s.mu.Unlock()
		logger.Error().Err(err).Int("worker_id", workerID).Msg("Job ilegível descartado")
		return
	}

	s.mu.RLock()
	handler, ok := s.handlers[job.Name]
	s.mu.RUnlock()
	if !ok {
		s.mu.Lock()
		s.unknown++
		s.mu.Unlock()
		logger.Warn().Str("job", job.Name).Str("job_id", job.ID).Msg("Job não implementado")
		return
	}

	start := time.Now()
	job.Attempts++
	err := handler(s.ctx, job.Payload)
	elapsed := uint64(time.Since(start).Milliseconds())

	if err == nil {
		s.mu.Lock()
		s.processed++
		s.processDuration += elapsed
		s.mu.Unlock()
		logger.Info().Str("job", job.Name).Str("job_id", job.ID).Int("attempt", job.Attempts).Msg("Job concluído")
		return
	}

	if job.Attempts < s.opts.MaxAttempts && s.ctx.Err() == nil {
		s.mu.Lock()
		s.retried++
		s.mu.Unlock()
		logger.Warn().Err(err).Str("job", job.Name).Str("job_id", job.ID).Int("attempt", job.Attempts).Msg("Job falhou, reenfileirando")
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), s.opts.PushTimeout)
		pushErr := s.push(pushCtx, job)
		cancel()
		if pushErr == nil {
			return
		}
		logger.Error().Err(pushErr).Str("job", job.Name).Str("job_id", job.ID).Msg("Falha ao reenfileirar job")
	}

	s.mu.Lock()
	s.failed++
	s.mu.Unlock()
	logger.Error().Err(err).Str("job", job.Name).Str("job_id", job.ID).Int("attempt", job.Attempts).Msg("Job falhou")
}

func (s *Service) Stats(ctx context.Context) Stats {
	pending, err := s.broker.Len(ctx, s.opts.Name)
	if err != nil {
		pending = -1
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var avg int64
	if s.processed > 0 {
		avg = int64(s.processDuration / s.processed)
	}
	return Stats{
		Queue:       s.opts.Name,
		Workers:     s.opts.Workers,
		Pending:     pending,
		Enqueued:    s.enqueued,
		Processed:   s.processed,
		Failed:      s.failed,
		Retried:     s.retried,
		Unknown:     s.unknown,
		AvgDuration: avg,
	}
}
