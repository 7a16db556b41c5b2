package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appcontract "github.com/gym/backend/internal/application/contract"
	"go.uber.org/zap"
)

var (
	ErrSchedulerNotRunning = errors.New("expiry scheduler is not running")
	ErrInvalidConfig       = errors.New("invalid expiry scheduler configuration")
)

// ContractExpirer moves overdue vigente contracts to vencido
type ContractExpirer interface {
	ExpireDue(ctx context.Context, now time.Time) (*appcontract.ExpirationStats, error)
}

// SweepRecorder receives the outcome of every sweep
type SweepRecorder interface {
	RecordSweep(ctx context.Context, expired, failed int, d time.Duration, err error)
}

// ContractExpirySchedulerConfig holds configuration for the contract expiry sweep
type ContractExpirySchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Interval between two sweeps
	Interval time.Duration

	// RunTimeout is the maximum time for a single sweep
	RunTimeout time.Duration

	// RunOnStart sweeps once immediately instead of waiting a full interval
	RunOnStart bool
}

// DefaultContractExpirySchedulerConfig returns default configuration
func DefaultContractExpirySchedulerConfig() ContractExpirySchedulerConfig {
	return ContractExpirySchedulerConfig{
		Enabled:    true,
		Interval:   time.Hour,
		RunTimeout: 5 * time.Minute,
		RunOnStart: true,
	}
}

// Validate checks the configuration
func (c ContractExpirySchedulerConfig) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidConfig)
	}
	if c.RunTimeout <= 0 {
		return fmt.Errorf("%w: run timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// ContractExpiryScheduler periodically runs the contract expiry sweep
type ContractExpiryScheduler struct {
	expirer   ContractExpirer
	logger    *zap.Logger
	config    ContractExpirySchedulerConfig
	now       func() time.Time
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	runMu     sync.Mutex
	isRunning bool
	lastStats *appcontract.ExpirationStats
	recorder  SweepRecorder
}

// NewContractExpiryScheduler creates a new contract expiry scheduler
func NewContractExpiryScheduler(
	expirer ContractExpirer,
	logger *zap.Logger,
	config ContractExpirySchedulerConfig,
) *ContractExpiryScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContractExpiryScheduler{
		expirer: expirer,
		logger:  logger,
		config:  config,
		now:     time.Now,
	}
}

// SetRecorder attaches a recorder for sweep outcomes. Call before Start.
func (s *ContractExpiryScheduler) SetRecorder(r SweepRecorder) {
	s.recorder = r
}

// Start starts the sweep loop
func (s *ContractExpiryScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Contract expiry scheduler is disabled")
		return nil
	}
	if err := s.config.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.isRunning = true
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go s.runLoop(ctx)

	s.logger.Info("Contract expiry scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Bool("run_on_start", s.config.RunOnStart),
	)
	return nil
}

// Stop gracefully stops the scheduler, waiting for an in-flight sweep
func (s *ContractExpiryScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Contract expiry scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Contract expiry scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *ContractExpiryScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		s.execute(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Contract expiry loop stopping")
			return
		case <-ticker.C:
			s.execute(ctx)
		}
	}
}

// execute runs one sweep. Sweeps never overlap.
func (s *ContractExpiryScheduler) execute(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	startTime := time.Now()
	stats, err := s.expirer.ExpireDue(runCtx, s.now())
	duration := time.Since(startTime)

	if s.recorder != nil {
		var expired, failed int
		if stats != nil {
			expired, failed = stats.Expired, stats.Failed
		}
		s.recorder.RecordSweep(ctx, expired, failed, duration, err)
	}

	if err != nil {
		s.logger.Error("Contract expiry sweep failed",
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	s.lastStats = stats
	s.mu.Unlock()

	if stats.Found > 0 {
		s.logger.Info("Contract expiry sweep finished",
			zap.Duration("duration", duration),
			zap.Int("found", stats.Found),
			zap.Int("expired", stats.Expired),
			zap.Int("failed", stats.Failed),
		)
	}
}

// TriggerImmediate runs a sweep now in the background
func (s *ContractExpiryScheduler) TriggerImmediate(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Triggering immediate contract expiry sweep")

	go func() {
		defer s.wg.Done()
		s.execute(ctx)
	}()
	return nil
}

// LastStats returns the statistics of the most recent successful sweep
func (s *ContractExpiryScheduler) LastStats() *appcontract.ExpirationStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStats
}

// IsRunning returns whether the scheduler is running
func (s *ContractExpiryScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
