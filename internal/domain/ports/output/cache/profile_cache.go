package cache

import (
	"context"
	"time"

	model "noders-content-service/internal/domain/models"
)

// ProfileCache maps a user id to a profile that is valid until its expiry.
// A missing or expired entry is reported as custom_errors.ErrCacheMiss.
//
//go:generate mockery --name ProfileCache --dir . --output ../../../../../mocks/cache --outpkg mocks --filename ProfileCache.go
type ProfileCache interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	SetProfile(ctx context.Context, profile *model.Profile, ttl time.Duration) error
	DeleteProfile(ctx context.Context, userID string) error
}
