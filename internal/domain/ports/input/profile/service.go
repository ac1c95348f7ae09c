package profile_service

import (
	"context"

	model "noders-content-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/profile --outpkg mocks --filename ProfileService.go
type Service interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	// EnsureProfile returns the stored profile, creating a member profile
	// from the given fields when none exists yet.
	EnsureProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	UpdateRole(ctx context.Context, userID string, role model.Role) (*model.Profile, error)
}
