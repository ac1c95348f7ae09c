package memory

import (
	"context"
	"sync"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
)

type entry struct {
	profile   model.Profile
	expiresAt time.Time
}

// ProfileCache keeps profiles in process. Expired entries are dropped on read.
type ProfileCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
}

func NewProfileCache() *ProfileCache {
	return NewProfileCacheWithClock(time.Now)
}

func NewProfileCacheWithClock(now func() time.Time) *ProfileCache {
	return &ProfileCache{now: now, entries: make(map[string]entry)}
}

func (c *ProfileCache) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[userID]
	if !ok {
		return nil, custom_errors.ErrCacheMiss
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, userID)
		return nil, custom_errors.ErrCacheMiss
	}
	profile := e.profile
	return &profile, nil
}

func (c *ProfileCache) SetProfile(ctx context.Context, profile *model.Profile, ttl time.Duration) error {
	if profile == nil {
		return custom_errors.ErrInvalidInput
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[profile.ID] = entry{profile: *profile, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *ProfileCache) DeleteProfile(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, userID)
	return nil
}
