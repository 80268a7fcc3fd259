package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	financeapp "github.com/agency/backend/internal/application/finance"
	"github.com/agency/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tickInterval is how often the scheduler checks whether the configured
// run time was reached.
const tickInterval = time.Minute

// AgencySource lists the agencies whose reports should be pre-warmed.
type AgencySource interface {
	AgencyIDs(ctx context.Context) ([]uuid.UUID, error)
}

// CashboxPrewarmScheduler assembles the previous and current month cashbox
// summary for every agency once a day, so the first report request of the
// morning hits the cache instead of replaying the full cash history.
type CashboxPrewarmScheduler struct {
	cfg      config.SchedulerConfig
	agencies AgencySource
	cashbox  *financeapp.CashboxService
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
	lastRun time.Time
}

// NewCashboxPrewarmScheduler creates a scheduler. It does nothing until
// Start is called.
func NewCashboxPrewarmScheduler(
	cfg config.SchedulerConfig,
	agencies AgencySource,
	cashbox *financeapp.CashboxService,
	logger *zap.Logger,
) *CashboxPrewarmScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CashboxPrewarmScheduler{
		cfg:      cfg,
		agencies: agencies,
		cashbox:  cashbox,
		logger:   logger,
	}
}

// Start launches the scheduling loop.
func (s *CashboxPrewarmScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.loop()

	s.logger.Info("Cashbox pre-warm scheduler started",
		zap.Int("hour", s.cfg.Hour),
		zap.Int("minute", s.cfg.Minute),
		zap.Duration("job_timeout", s.cfg.JobTimeout),
	)
	return nil
}

// Stop halts the loop and waits for an in-flight run to finish or the
// context to expire.
func (s *CashboxPrewarmScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		s.logger.Info("Cashbox pre-warm scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *CashboxPrewarmScheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			if !s.due(now) {
				continue
			}
			s.runOnce(now)
		}
	}
}

// due reports whether the configured daily run time was reached and the run
// has not happened yet today.
func (s *CashboxPrewarmScheduler) due(now time.Time) bool {
	if now.Hour() != s.cfg.Hour || now.Minute() != s.cfg.Minute {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sameDay(s.lastRun, now) {
		return false
	}
	s.lastRun = now
	return true
}

// runOnce warms the previous and current month for every agency. A single
// agency failure is logged and does not stop the sweep.
func (s *CashboxPrewarmScheduler) runOnce(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()

	agencies, err := s.agencies.AgencyIDs(ctx)
	if err != nil {
		s.logger.Error("Failed to list agencies for pre-warm", zap.Error(err))
		return
	}

	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := []time.Time{currentMonth.AddDate(0, -1, 0), currentMonth}

	start := time.Now()
	warmed := 0
	for _, agencyID := range agencies {
		for _, month := range months {
			if ctx.Err() != nil {
				s.logger.Warn("Pre-warm aborted by timeout", zap.Int("warmed", warmed))
				return
			}
			if _, err := s.cashbox.MonthlySummary(ctx, agencyID, month, 1, 20); err != nil {
				s.logger.Error("Cashbox pre-warm failed",
					zap.String("agency_id", agencyID.String()),
					zap.String("month", month.Format("2006-01")),
					zap.Error(err),
				)
				continue
			}
			warmed++
		}
	}

	s.logger.Info("Cashbox pre-warm sweep finished",
		zap.Int("agencies", len(agencies)),
		zap.Int("warmed", warmed),
		zap.Duration("took", time.Since(start)),
	)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
