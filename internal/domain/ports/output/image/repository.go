package image_repository

import (
	"context"
	"time"

	model "noders-content-service/internal/domain/models"
)

type Repository interface {
	Create(ctx context.Context, image *model.Image) (*model.Image, error)
	GetByID(ctx context.Context, id string) (*model.Image, error)
	Delete(ctx context.Context, id string) error
	// ListUnreferenced returns post_block images created before the cutoff
	// that no image block points at.
	ListUnreferenced(ctx context.Context, createdBefore time.Time, limit int) ([]*model.Image, error)
}
