package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	appreporting "github.com/hotelops/backend/internal/application/reporting"
	"github.com/hotelops/backend/internal/domain/reporting"
)

// sweepTickerInterval is the interval at which the scheduler checks whether
// the sweep window has arrived
const sweepTickerInterval = 1 * time.Minute

// ErrSchedulerNotRunning is returned when a manual trigger hits a stopped scheduler
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// AlertGenerator runs the leakage reconciliation for one period and raises
// alerts for items whose leakage crosses the severity bands
type AlertGenerator interface {
	GenerateAlerts(ctx context.Context, period reporting.AlertPeriod, startDate time.Time) ([]appreporting.AlertResponse, error)
}

// AlertSweepConfig holds configuration for the nightly alert sweep
type AlertSweepConfig struct {
	// Enabled indicates if the sweep scheduler is enabled
	Enabled bool
	// SweepHour is the hour (0-23) to run the daily sweep
	SweepHour int
	// SweepMinute is the minute (0-59) to run the daily sweep
	SweepMinute int
	// JobTimeout is the maximum time a single sweep can run
	JobTimeout time.Duration
}

// DefaultAlertSweepConfig returns the default sweep configuration.
// Defaults to 02:00, after the previous day's consumption entries settle.
func DefaultAlertSweepConfig() AlertSweepConfig {
	return AlertSweepConfig{
		Enabled:     true,
		SweepHour:   2,
		SweepMinute: 0,
		JobTimeout:  10 * time.Minute,
	}
}

// AlertSweepScheduler runs the leakage alert sweep once a day. Every sweep
// covers the previous day; on Mondays it also closes out the previous week,
// and on the first of the month the previous month.
type AlertSweepScheduler struct {
	config    AlertSweepConfig
	generator AlertGenerator
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRunAt *time.Time
	nextRunAt *time.Time
}

// NewAlertSweepScheduler creates a new alert sweep scheduler
func NewAlertSweepScheduler(config AlertSweepConfig, generator AlertGenerator, logger *zap.Logger) *AlertSweepScheduler {
	return &AlertSweepScheduler{
		config:    config,
		generator: generator,
		logger:    logger,
	}
}

// Start starts the sweep scheduler
func (s *AlertSweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.calculateNextRunTime()

	s.wg.Add(1)
	go s.sweepLoop(ctx)

	s.logger.Info("Alert sweep scheduler started",
		zap.Int("sweep_hour", s.config.SweepHour),
		zap.Int("sweep_minute", s.config.SweepMinute),
		zap.Timep("next_run_at", s.nextRunAt),
	)

	return nil
}

// Stop stops the sweep scheduler and waits for an in-flight sweep to finish
func (s *AlertSweepScheduler) Stop(ctx context.Context) error {
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
		s.logger.Info("Alert sweep scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Alert sweep scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerManualRun triggers a sweep outside the schedule. Runs on a
// background context so an HTTP caller disconnecting does not cancel it.
func (s *AlertSweepScheduler) TriggerManualRun() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	go s.runSweep(context.Background(), time.Now())
	return nil
}

// NextRunAt returns the next scheduled sweep time
func (s *AlertSweepScheduler) NextRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunAt
}

// LastRunAt returns the time of the last sweep, if any
func (s *AlertSweepScheduler) LastRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt
}

func (s *AlertSweepScheduler) sweepLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(sweepTickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.runSweep(ctx, now)
				s.calculateNextRunTime()
			}
		}
	}
}

func (s *AlertSweepScheduler) shouldRun(now time.Time) bool {
	return now.Hour() == s.config.SweepHour && now.Minute() == s.config.SweepMinute
}

func (s *AlertSweepScheduler) calculateNextRunTime() {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.config.SweepHour, s.config.SweepMinute, 0, 0, now.Location())
	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	s.mu.Lock()
	s.nextRunAt = &next
	s.mu.Unlock()
}

// runSweep generates alerts for every period that closed before now
func (s *AlertSweepScheduler) runSweep(ctx context.Context, now time.Time) {
	s.mu.Lock()
	runAt := now
	s.lastRunAt = &runAt
	s.mu.Unlock()

	for _, sweep := range periodsDueAt(now) {
		s.generateForPeriod(ctx, sweep.period, sweep.startDate)
	}
}

type periodSweep struct {
	period    reporting.AlertPeriod
	startDate time.Time
}

// periodsDueAt returns the periods that closed before now. The daily sweep
// always covers yesterday; weeks close on Monday and months on the first.
func periodsDueAt(now time.Time) []periodSweep {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sweeps := []periodSweep{
		{period: reporting.AlertPeriodDaily, startDate: today.AddDate(0, 0, -1)},
	}

	if today.Weekday() == time.Monday {
		sweeps = append(sweeps, periodSweep{
			period:    reporting.AlertPeriodWeekly,
			startDate: today.AddDate(0, 0, -7),
		})
	}

	if today.Day() == 1 {
		sweeps = append(sweeps, periodSweep{
			period:    reporting.AlertPeriodMonthly,
			startDate: today.AddDate(0, -1, 0),
		})
	}

	return sweeps
}

func (s *AlertSweepScheduler) generateForPeriod(ctx context.Context, period reporting.AlertPeriod, startDate time.Time) {
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	s.logger.Info("Starting leakage alert sweep",
		zap.String("period", string(period)),
		zap.Time("start_date", startDate),
	)

	alerts, err := s.generator.GenerateAlerts(jobCtx, period, startDate)
	if err != nil {
		s.logger.Error("Leakage alert sweep failed",
			zap.String("period", string(period)),
			zap.Time("start_date", startDate),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Leakage alert sweep completed",
		zap.String("period", string(period)),
		zap.Time("start_date", startDate),
		zap.Int("alerts_raised", len(alerts)),
	)
}
