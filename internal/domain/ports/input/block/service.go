package block_service

import (
	"context"

	model "noders-content-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/block --outpkg mocks --filename BlockService.go
type Service interface {
	ListBlocks(ctx context.Context, postID string) ([]model.Block, error)
	CreateBlock(ctx context.Context, actor *model.Principal, block *model.CreateBlockDTO) (*model.Block, error)
	UpdateBlock(ctx context.Context, actor *model.Principal, postID, blockID string, update *model.UpdateBlockDTO) (*model.Block, error)
	DeleteBlock(ctx context.Context, actor *model.Principal, postID, blockID string) error
}
