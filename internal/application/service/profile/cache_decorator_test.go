package profile_service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	"noders-content-service/internal/infrastructure/logger"
	memory_cache "noders-content-service/internal/infrastructure/outbound/cache/memory"
	"noders-content-service/internal/infrastructure/outbound/metrics/prometheus"
	cache_mock "noders-content-service/mocks/cache"
	profile_mock "noders-content-service/mocks/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// blockingService holds every GetProfile call until release is closed.
type blockingService struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
	profile *model.Profile
}

func (s *blockingService) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	if s.calls.Add(1) == 1 {
		close(s.entered)
	}
	<-s.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := *s.profile
	return &p, nil
}

func (s *blockingService) EnsureProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	return s.GetProfile(ctx, profile.ID)
}

func (s *blockingService) UpdateRole(ctx context.Context, userID string, role model.Role) (*model.Profile, error) {
	return nil, errors.New("not implemented")
}

func TestProfileServiceCacheDecorator_GetProfile(t *testing.T) {
	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()
	profile := &model.Profile{ID: "u1", FullName: "Ada", Role: model.RoleMember}

	t.Run("cache hit skips the service", func(t *testing.T) {
		svc := new(profile_mock.Service)
		c := new(cache_mock.ProfileCache)
		c.On("GetProfile", mock.Anything, "u1").Return(profile, nil)

		d := NewProfileServiceCacheDecorator(svc, c, time.Minute, log, metrics)
		got, err := d.GetProfile(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, profile, got)
		svc.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})

	t.Run("miss reads through and stores with ttl", func(t *testing.T) {
		svc := new(profile_mock.Service)
		svc.On("GetProfile", mock.Anything, "u1").Return(profile, nil).Once()
		c := new(cache_mock.ProfileCache)
		c.On("GetProfile", mock.Anything, "u1").Return(nil, custom_errors.ErrCacheMiss)
		c.On("SetProfile", mock.Anything, profile, 2*time.Minute).Return(nil)

		d := NewProfileServiceCacheDecorator(svc, c, 2*time.Minute, log, metrics)
		got, err := d.GetProfile(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.FullName)
		svc.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("broken cache still serves", func(t *testing.T) {
		svc := new(profile_mock.Service)
		svc.On("GetProfile", mock.Anything, "u1").Return(profile, nil)
		c := new(cache_mock.ProfileCache)
		c.On("GetProfile", mock.Anything, "u1").Return(nil, errors.New("connection refused"))
		c.On("SetProfile", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

		d := NewProfileServiceCacheDecorator(svc, c, time.Minute, log, metrics)
		got, err := d.GetProfile(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
	})

	t.Run("not found is not cached", func(t *testing.T) {
		svc := new(profile_mock.Service)
		svc.On("GetProfile", mock.Anything, "ghost").Return(nil, custom_errors.ErrProfileNotFound)
		c := new(cache_mock.ProfileCache)
		c.On("GetProfile", mock.Anything, "ghost").Return(nil, custom_errors.ErrCacheMiss)

		d := NewProfileServiceCacheDecorator(svc, c, time.Minute, log, metrics)
		_, err := d.GetProfile(context.Background(), "ghost")
		assert.ErrorIs(t, err, custom_errors.ErrProfileNotFound)
		c.AssertNotCalled(t, "SetProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProfileServiceCacheDecorator_CollapsesConcurrentFetches(t *testing.T) {
	svc := &blockingService{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		profile: &model.Profile{ID: "u1", FullName: "Ada"},
	}
	d := NewProfileServiceCacheDecorator(svc, memory_cache.NewProfileCache(), time.Minute, logger.New("test"), prometheus.NewPrometheusMetricsProvider())

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*model.Profile, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		p, err := d.GetProfile(context.Background(), "u1")
		assert.NoError(t, err)
		results[0] = p
	}()
	<-svc.entered

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := d.GetProfile(context.Background(), "u1")
			assert.NoError(t, err)
			results[i] = p
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(svc.release)
	wg.Wait()

	assert.Equal(t, int32(1), svc.calls.Load())
	for i, p := range results {
		require.NotNil(t, p, i)
		assert.Equal(t, "Ada", p.FullName)
	}
	// callers get independent copies
	results[1].FullName = "changed"
	assert.Equal(t, "Ada", results[0].FullName)
}

func TestProfileServiceCacheDecorator_FirstCallerCancelDoesNotFailWaiters(t *testing.T) {
	svc := &blockingService{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		profile: &model.Profile{ID: "u1", FullName: "Ada"},
	}
	d := NewProfileServiceCacheDecorator(svc, memory_cache.NewProfileCache(), time.Minute, logger.New("test"), prometheus.NewPrometheusMetricsProvider())

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := d.GetProfile(ctx, "u1")
		first <- err
	}()
	<-svc.entered

	second := make(chan *model.Profile, 1)
	go func() {
		p, err := d.GetProfile(context.Background(), "u1")
		assert.NoError(t, err)
		second <- p
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	close(svc.release)

	assert.NoError(t, <-first)
	p := <-second
	require.NotNil(t, p)
	assert.Equal(t, "Ada", p.FullName)
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestProfileServiceCacheDecorator_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := memory_cache.NewProfileCacheWithClock(func() time.Time { return now })

	svc := new(profile_mock.Service)
	svc.On("GetProfile", mock.Anything, "u1").Return(&model.Profile{ID: "u1"}, nil).Twice()

	d := NewProfileServiceCacheDecorator(svc, c, time.Minute, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
	ctx := context.Background()

	_, err := d.GetProfile(ctx, "u1")
	require.NoError(t, err)
	_, err = d.GetProfile(ctx, "u1")
	require.NoError(t, err)
	svc.AssertNumberOfCalls(t, "GetProfile", 1)

	now = now.Add(2 * time.Minute)
	_, err = d.GetProfile(ctx, "u1")
	require.NoError(t, err)
	svc.AssertNumberOfCalls(t, "GetProfile", 2)
}

func TestProfileServiceCacheDecorator_UpdateRole(t *testing.T) {
	c := memory_cache.NewProfileCache()
	ctx := context.Background()
	require.NoError(t, c.SetProfile(ctx, &model.Profile{ID: "u1", Role: model.RoleMember}, time.Minute))

	svc := new(profile_mock.Service)
	svc.On("UpdateRole", mock.Anything, "u1", model.RoleAdmin).Return(&model.Profile{ID: "u1", Role: model.RoleAdmin}, nil)

	d := NewProfileServiceCacheDecorator(svc, c, time.Minute, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
	updated, err := d.UpdateRole(ctx, "u1", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	cached, err := d.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, cached.Role)
	svc.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestProfileServiceCacheDecorator_EnsureProfile(t *testing.T) {
	c := memory_cache.NewProfileCache()
	ctx := context.Background()

	svc := new(profile_mock.Service)
	svc.On("EnsureProfile", mock.Anything, mock.Anything).Return(&model.Profile{ID: "u1", Role: model.RoleMember}, nil).Once()

	d := NewProfileServiceCacheDecorator(svc, c, time.Minute, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
	for i := 0; i < 3; i++ {
		p, err := d.EnsureProfile(ctx, &model.Profile{ID: "u1", Email: "ada@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "u1", p.ID)
	}
	svc.AssertNumberOfCalls(t, "EnsureProfile", 1)
}
