package profile_repository

import (
	"context"

	model "noders-content-service/internal/domain/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	Upsert(ctx context.Context, profile *model.Profile) (*model.Profile, error)
}
