package worker

import (
	"context"
	"errors"
	"time"

	"github.com/e11even-central/api/internal/config"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	sessionSweepInterval = time.Minute
	sessionSweepBatch    = 200
)

// Service runs the asynq consumer plus the periodic session sweep.
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService builds the worker from queue config.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the consumer until the server stops.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.PaymentSessionService != nil {
		go s.runSessionSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the consumer down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runSessionSweepLoop closes payment sessions whose queued expiry task
// was lost, so a stuck session never outlives its window by more than
// one sweep interval.
func (s *Service) runSessionSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.PaymentSessionService == nil {
		return
	}
	runOnce := func() {
		count, err := s.consumer.PaymentSessionService.SweepExpired(sessionSweepBatch)
		if err != nil {
			logger.Warnw("worker_session_sweep_failed", "error", err)
			return
		}
		if count > 0 {
			logger.Infow("worker_session_sweep_closed", "count", count)
		}
	}
	runOnce()

	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
