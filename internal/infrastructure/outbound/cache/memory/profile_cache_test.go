package memory

import (
	"context"
	"testing"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCache_Expiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewProfileCacheWithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, cache.SetProfile(ctx, &model.Profile{ID: "u1", Role: model.RoleAdmin}, time.Minute))

	got, err := cache.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)

	now = now.Add(59 * time.Second)
	_, err = cache.GetProfile(ctx, "u1")
	assert.NoError(t, err)

	now = now.Add(time.Second)
	_, err = cache.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
}

func TestProfileCache_Delete(t *testing.T) {
	cache := NewProfileCache()
	ctx := context.Background()

	require.NoError(t, cache.SetProfile(ctx, &model.Profile{ID: "u1"}, time.Hour))
	require.NoError(t, cache.DeleteProfile(ctx, "u1"))

	_, err := cache.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
}

func TestProfileCache_ReturnsCopy(t *testing.T) {
	cache := NewProfileCache()
	ctx := context.Background()

	require.NoError(t, cache.SetProfile(ctx, &model.Profile{ID: "u1", FullName: "Ada"}, time.Hour))
	got, err := cache.GetProfile(ctx, "u1")
	require.NoError(t, err)
	got.FullName = "changed"

	again, err := cache.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.FullName)
}
