package cron_jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"noders-content-service/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReclaimer struct {
	mu      sync.Mutex
	calls   []time.Duration
	result  int
	err     error
	release chan struct{}
	entered chan struct{}
}

func (f *fakeReclaimer) ReclaimOrphans(_ context.Context, olderThan time.Duration) (int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, olderThan)
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

func TestOrphanSweeper_RunOnce(t *testing.T) {
	tests := []struct {
		name     string
		result   int
		err      error
		expected int
	}{
		{"reclaims", 3, nil, 3},
		{"nothing to do", 0, nil, 0},
		{"partial failure", 1, errors.New("storage down"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeReclaimer{result: tt.result, err: tt.err}
			s, err := NewOrphanSweeper(r, "@every 1h", 24*time.Hour, logger.New("test"))
			require.NoError(t, err)

			assert.Equal(t, tt.expected, s.RunOnce(context.Background()))
			assert.Equal(t, []time.Duration{24 * time.Hour}, r.calls)
		})
	}
}

func TestOrphanSweeper_InvalidSchedule(t *testing.T) {
	_, err := NewOrphanSweeper(&fakeReclaimer{}, "every now and then", time.Hour, logger.New("test"))
	assert.Error(t, err)
}

func TestOrphanSweeper_SkipsOverlappingRuns(t *testing.T) {
	r := &fakeReclaimer{result: 2, release: make(chan struct{}), entered: make(chan struct{}, 1)}
	s, err := NewOrphanSweeper(r, "@every 1h", time.Hour, logger.New("test"))
	require.NoError(t, err)

	done := make(chan int)
	go func() { done <- s.RunOnce(context.Background()) }()
	<-r.entered

	assert.Equal(t, 0, s.RunOnce(context.Background()))
	close(r.release)
	assert.Equal(t, 2, <-done)
	assert.Len(t, r.calls, 1)
}

func TestOrphanSweeper_StartStop(t *testing.T) {
	s, err := NewOrphanSweeper(&fakeReclaimer{}, "@every 1h", time.Hour, logger.New("test"))
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
