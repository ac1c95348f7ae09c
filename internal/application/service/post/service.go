package post_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	block_repository "noders-content-service/internal/domain/ports/output/block"
	post_repository "noders-content-service/internal/domain/ports/output/post"
)

const maxTitleLength = 200

type PostService struct {
	postRepo  post_repository.Repository
	blockRepo block_repository.Repository
	log       ports.Logger
}

func NewPostService(postRepo post_repository.Repository, blockRepo block_repository.Repository, log ports.Logger) *PostService {
	return &PostService{postRepo: postRepo, blockRepo: blockRepo, log: log}
}

func (s *PostService) CreatePost(ctx context.Context, actor *model.Principal, post *model.CreatePostDTO) (*model.Post, error) {
	if actor == nil {
		return nil, custom_errors.ErrUnauthenticated
	}
	title := strings.TrimSpace(post.Title)
	if title == "" || len([]rune(title)) > maxTitleLength {
		return nil, custom_errors.ErrInvalidInput
	}

	created, err := s.postRepo.Create(ctx, &model.Post{AuthorID: actor.UserID, Title: title})
	if err != nil {
		s.log.Error("Failed to create post", slog.String("author_id", actor.UserID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	s.log.Info("Post created", slog.String("post_id", created.ID), slog.String("author_id", created.AuthorID))
	return created, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post", slog.String("post_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	blocks, err := s.blockRepo.ListByPost(ctx, id)
	if err != nil {
		s.log.Error("Failed to list post blocks", slog.String("post_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &model.PostDetailed{Post: post, Blocks: blocks}, nil
}
