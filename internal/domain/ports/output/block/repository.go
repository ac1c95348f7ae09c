package block_repository

import (
	"context"

	model "noders-content-service/internal/domain/models"
)

type Repository interface {
	Create(ctx context.Context, block *model.CreateBlockDTO) (*model.Block, error)
	GetByID(ctx context.Context, postID, id string) (*model.Block, error)
	ListByPost(ctx context.Context, postID string) ([]model.Block, error)
	UpdateContent(ctx context.Context, postID, id string, content model.Content) (*model.Block, error)
	Delete(ctx context.Context, postID, id string) error
	ShiftDown(ctx context.Context, postID string, fromIndex int) error
}
