package cron_jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	ports "noders-content-service/internal/domain/ports/output"

	"github.com/robfig/cron/v3"
)

type OrphanReclaimer interface {
	ReclaimOrphans(ctx context.Context, olderThan time.Duration) (int, error)
}

// OrphanSweeper periodically removes uploaded post images that no block
// references once they are older than the grace period.
type OrphanSweeper struct {
	reclaimer OrphanReclaimer
	grace     time.Duration
	timeout   time.Duration
	log       ports.Logger

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

func NewOrphanSweeper(reclaimer OrphanReclaimer, schedule string, grace time.Duration, log ports.Logger) (*OrphanSweeper, error) {
	s := &OrphanSweeper{
		reclaimer: reclaimer,
		grace:     grace,
		timeout:   5 * time.Minute,
		log:       log,
		cron:      cron.New(),
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *OrphanSweeper) Start() {
	s.cron.Start()
	s.log.Info("Orphan image sweeper started", slog.Duration("grace", s.grace))
}

// Stop waits for a running sweep to finish or for ctx to end.
func (s *OrphanSweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("Orphan sweeper stop timed out")
	}
}

// RunOnce performs a single sweep. Overlapping calls are skipped.
func (s *OrphanSweeper) RunOnce(ctx context.Context) int {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Debug("Orphan sweep already running, skipping")
		return 0
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reclaimed, err := s.reclaimer.ReclaimOrphans(ctx, s.grace)
	if err != nil {
		s.log.Error("Orphan sweep failed",
			slog.Int("reclaimed", reclaimed),
			slog.String("error", err.Error()))
		return reclaimed
	}
	s.log.Info("Orphan sweep finished",
		slog.Int("reclaimed", reclaimed),
		slog.Duration("took", time.Since(start)))
	return reclaimed
}
