package profile_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	profile_service "noders-content-service/internal/domain/ports/input/profile"
	output "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/domain/ports/output/cache"

	"golang.org/x/sync/singleflight"
)

// ProfileServiceCacheDecorator serves profiles from cache and collapses
// concurrent fetches for the same user into one call.
type ProfileServiceCacheDecorator struct {
	service      profile_service.Service
	profileCache cache.ProfileCache
	ttl          time.Duration
	group        singleflight.Group
	log          output.Logger
	metrics      output.MetricsProvider
}

func NewProfileServiceCacheDecorator(
	service profile_service.Service,
	profileCache cache.ProfileCache,
	ttl time.Duration,
	log output.Logger,
	metrics output.MetricsProvider,
) *ProfileServiceCacheDecorator {
	return &ProfileServiceCacheDecorator{
		service:      service,
		profileCache: profileCache,
		ttl:          ttl,
		log:          log,
		metrics:      metrics,
	}
}

func (d *ProfileServiceCacheDecorator) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	start := time.Now()
	cached, err := d.profileCache.GetProfile(ctx, userID)
	d.metrics.RecordCacheOperationDuration("profile_get", time.Since(start))
	if err == nil {
		d.metrics.IncrementCacheHits()
		return cached, nil
	}
	d.metrics.IncrementCacheMisses()
	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Profile cache unavailable, reading through", slog.String("user_id", userID), slog.String("error", err.Error()))
	}

	// Waiters share this fetch, so one caller's cancellation must not fail
	// the rest.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := d.group.Do(userID, func() (any, error) {
		profile, err := d.service.GetProfile(fetchCtx, userID)
		if err != nil {
			return nil, err
		}
		d.store(fetchCtx, profile)
		return profile, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		d.log.Debug("Shared in-flight profile fetch", slog.String("user_id", userID))
	}
	profile := *v.(*model.Profile)
	return &profile, nil
}

func (d *ProfileServiceCacheDecorator) EnsureProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if profile != nil {
		if cached, err := d.profileCache.GetProfile(ctx, profile.ID); err == nil {
			d.metrics.IncrementCacheHits()
			return cached, nil
		}
		d.metrics.IncrementCacheMisses()
	}

	result, err := d.service.EnsureProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	d.store(ctx, result)
	return result, nil
}

func (d *ProfileServiceCacheDecorator) UpdateRole(ctx context.Context, userID string, role model.Role) (*model.Profile, error) {
	result, err := d.service.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	if err := d.profileCache.DeleteProfile(ctx, userID); err != nil {
		d.log.Warn("Failed to invalidate profile cache", slog.String("user_id", userID), slog.String("error", err.Error()))
	}
	d.group.Forget(userID)
	d.store(ctx, result)
	return result, nil
}

func (d *ProfileServiceCacheDecorator) store(ctx context.Context, profile *model.Profile) {
	start := time.Now()
	if err := d.profileCache.SetProfile(ctx, profile, d.ttl); err != nil {
		d.log.Warn("Failed to cache profile", slog.String("user_id", profile.ID), slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("profile_set", time.Since(start))
}
