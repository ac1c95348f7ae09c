package memory

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"

	"github.com/google/uuid"
)

type PostRepository struct {
	log   ports.Logger
	mu    sync.RWMutex
	posts map[string]*model.Post
}

func NewPostRepository(log ports.Logger) *PostRepository {
	return &PostRepository{
		log:   log,
		posts: make(map[string]*model.Post),
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.log.Debug("Creating new post (memory impl)", slog.String("author_id", post.AuthorID), slog.String("title", post.Title))

	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now().UTC()
	newPost := &model.Post{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if newPost.ID == "" {
		newPost.ID = uuid.NewString()
	}
	p.posts[newPost.ID] = newPost

	p.log.Debug("Successfully created post (memory impl)", slog.String("id", newPost.ID))
	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.String("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

// LockByID is GetByID here; the memory unit of work serializes transactions.
func (p *PostRepository) LockByID(ctx context.Context, id string) (*model.Post, error) {
	return p.GetByID(ctx, id)
}

func (p *PostRepository) Checkpoint() func() {
	p.mu.RLock()
	saved := maps.Clone(p.posts)
	for id, post := range saved {
		cp := *post
		saved[id] = &cp
	}
	p.mu.RUnlock()

	return func() {
		p.mu.Lock()
		p.posts = saved
		p.mu.Unlock()
	}
}
