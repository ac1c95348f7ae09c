package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
)

const profileKeyPrefix = "profile:"

type ProfileCache struct {
	client *Client
	log    ports.Logger
}

func NewProfileCache(client *Client, log ports.Logger) *ProfileCache {
	return &ProfileCache{client: client, log: log}
}

func profileKey(userID string) string {
	return profileKeyPrefix + userID
}

func (c *ProfileCache) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	if err := c.client.Get(ctx, profileKey(userID), &profile); err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, custom_errors.ErrCacheMiss
		}
		c.log.Warn("Profile cache read failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}
	return &profile, nil
}

func (c *ProfileCache) SetProfile(ctx context.Context, profile *model.Profile, ttl time.Duration) error {
	return c.client.Set(ctx, profileKey(profile.ID), profile, ttl)
}

func (c *ProfileCache) DeleteProfile(ctx context.Context, userID string) error {
	return c.client.Delete(ctx, profileKey(userID))
}
