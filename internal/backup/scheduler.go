package backup

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/sahabhq/console/internal/common/cnst"
	"github.com/sahabhq/console/internal/common/config"
	"github.com/sahabhq/console/internal/console/store"
	"github.com/sahabhq/console/internal/platform"
	"github.com/sahabhq/console/pkg/metrics"
	"github.com/sahabhq/console/pkg/trace"
)

const defaultCheckInterval = time.Minute

// RetryPolicy defines how a failed backup trigger is retried.
type RetryPolicy struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryPolicy returns the production retry policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		BaseDelay:     30 * time.Second,
		MaxDelay:      10 * time.Minute,
		BackoffFactor: 2.0,
	}
}

// Delay returns the backoff before retry attempt n (first retry is 1).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	delay := time.Duration(float64(p.BaseDelay) * math.Pow(p.BackoffFactor, float64(attempt-1)))
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// Scheduler triggers upstream backups on the operator-set cadence. One
// goroutine checks the schedule on a ticker; the run slot is claimed in
// the preferences store before the upstream call so a crashed run is
// not repeated until the next period.
type Scheduler struct {
	logger   *zap.Logger
	platform *platform.Client
	prefs    store.Store
	tokens   TokenSource
	metrics  *metrics.Metrics
	interval time.Duration
	retry    RetryPolicy

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates the backup scheduler. metrics may be nil in
// tests.
func NewScheduler(logger *zap.Logger, client *platform.Client, prefs store.Store, tokens TokenSource, m *metrics.Metrics, cfg config.BackupConfig) *Scheduler {
	interval := cfg.CheckInterval
	if interval <= 0 {
		interval = defaultCheckInterval
	}
	return &Scheduler{
		logger:   logger.Named("backup.scheduler"),
		platform: client,
		prefs:    prefs,
		tokens:   tokens,
		metrics:  m,
		interval: interval,
		retry:    DefaultRetryPolicy(),
	}
}

// Start launches the check loop. Stop cancels it and waits for the
// in-flight tick, including any backoff sleep, to unwind.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.logger.Info("backup scheduler started", zap.Duration("check_interval", s.interval))
	go s.loop(ctx)
}

// Stop shuts the scheduler down and blocks until the loop exits.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info("backup scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick checks whether a run is owed and performs it.
func (s *Scheduler) tick(ctx context.Context) {
	sched := s.loadSchedule(ctx)
	if !sched.Enabled() {
		return
	}

	now := time.Now()
	if !sched.IsDue(s.loadLastRun(ctx), now) {
		return
	}

	// claim the slot first so a crash mid-run does not replay it
	if err := s.prefs.Put(ctx, cnst.SchedulerUser, cnst.PrefBackupLastRun, now.Format(time.RFC3339)); err != nil {
		s.logger.Error("failed to record backup run", zap.Error(err))
		return
	}

	s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	scope := trace.Tracer(cnst.TraceBackup).Start(ctx, cnst.SpanBackupRun)
	defer scope.End()

	var lastErr error
	for attempt := 0; attempt <= s.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.retry.Delay(attempt)
			s.logger.Warn("backup trigger failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}

		token, err := s.tokens.Token(scope.Ctx)
		if err != nil {
			lastErr = err
			continue
		}
		b, err := s.platform.CreateBackup(scope.Ctx, token, "scheduled")
		if err != nil {
			lastErr = err
			continue
		}

		if s.metrics != nil {
			s.metrics.BackupRun("success")
		}
		s.logger.Info("scheduled backup triggered",
			zap.Int64("backup_id", b.ID),
			zap.Int("attempt", attempt))
		return
	}

	if s.metrics != nil {
		s.metrics.BackupRun("failed")
	}
	s.logger.Error("scheduled backup failed after retries",
		zap.Int("retries", s.retry.MaxRetries),
		zap.Error(lastErr))
}

// loadSchedule reads the stored schedule; an absent or unreadable value
// means off.
func (s *Scheduler) loadSchedule(ctx context.Context) Schedule {
	raw, err := s.prefs.Get(ctx, cnst.SchedulerUser, cnst.PrefBackupSchedule)
	if err != nil {
		if !errors.Is(err, store.ErrPreferenceNotFound) {
			s.logger.Warn("failed to load backup schedule", zap.Error(err))
		}
		return DefaultSchedule()
	}
	sched, err := ParseSchedule(raw)
	if err != nil {
		s.logger.Warn("stored backup schedule is invalid", zap.Error(err))
		return DefaultSchedule()
	}
	return sched
}

// loadLastRun reads the last recorded run; absent or unreadable means
// never ran.
func (s *Scheduler) loadLastRun(ctx context.Context) time.Time {
	raw, err := s.prefs.Get(ctx, cnst.SchedulerUser, cnst.PrefBackupLastRun)
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		s.logger.Warn("stored backup last-run is invalid", zap.String("value", raw))
		return time.Time{}
	}
	return t
}
