package post_service

import (
	"context"

	model "noders-content-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/post --outpkg mocks --filename PostService.go
type Service interface {
	CreatePost(ctx context.Context, actor *model.Principal, post *model.CreatePostDTO) (*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.PostDetailed, error)
}
