package post_repository

import (
	"context"

	model "noders-content-service/internal/domain/models"
)

type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// LockByID returns the post and holds a row lock until the transaction ends.
	LockByID(ctx context.Context, id string) (*model.Post, error)
}
