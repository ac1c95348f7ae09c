package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/domain/rules"

	"github.com/google/uuid"
)

type BlockRepository struct {
	log    ports.Logger
	mu     sync.RWMutex
	blocks map[string]map[string]*model.Block
}

func NewBlockRepository(log ports.Logger) *BlockRepository {
	return &BlockRepository{
		log:    log,
		blocks: make(map[string]map[string]*model.Block),
	}
}

func (r *BlockRepository) Create(ctx context.Context, block *model.CreateBlockDTO) (*model.Block, error) {
	r.log.Debug("Creating block (memory impl)", slog.String("post_id", block.PostID), slog.String("type", string(block.Type)))

	r.mu.Lock()
	defer r.mu.Unlock()

	byID, ok := r.blocks[block.PostID]
	if !ok {
		byID = make(map[string]*model.Block)
		r.blocks[block.PostID] = byID
	}
	for _, existing := range byID {
		if existing.OrderIndex == block.OrderIndex {
			r.log.Debug("Order index already taken", slog.String("post_id", block.PostID), slog.Int("order_index", block.OrderIndex))
			return nil, custom_errors.ErrBlockCreateFailed
		}
	}

	now := time.Now().UTC()
	created := &model.Block{
		ID:         uuid.NewString(),
		PostID:     block.PostID,
		Type:       block.Type,
		Content:    block.Content,
		OrderIndex: block.OrderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	byID[created.ID] = created

	result := *created
	return &result, nil
}

func (r *BlockRepository) GetByID(ctx context.Context, postID, id string) (*model.Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	block, ok := r.blocks[postID][id]
	if !ok {
		r.log.Debug("Block not found by id", slog.String("id", id), slog.String("post_id", postID))
		return nil, custom_errors.ErrBlockNotFound
	}
	result := *block
	return &result, nil
}

func (r *BlockRepository) ListByPost(ctx context.Context, postID string) ([]model.Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blocks := make([]model.Block, 0, len(r.blocks[postID]))
	for _, block := range r.blocks[postID] {
		blocks = append(blocks, *block)
	}
	return rules.SortedByOrder(blocks), nil
}

func (r *BlockRepository) UpdateContent(ctx context.Context, postID, id string, content model.Content) (*model.Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	block, ok := r.blocks[postID][id]
	if !ok {
		return nil, custom_errors.ErrBlockNotFound
	}
	block.Content = content
	block.UpdatedAt = time.Now().UTC()

	result := *block
	return &result, nil
}

func (r *BlockRepository) Delete(ctx context.Context, postID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blocks[postID][id]; !ok {
		return custom_errors.ErrBlockNotFound
	}
	delete(r.blocks[postID], id)
	return nil
}

func (r *BlockRepository) ShiftDown(ctx context.Context, postID string, fromIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, block := range r.blocks[postID] {
		if block.OrderIndex > fromIndex {
			block.OrderIndex--
		}
	}
	return nil
}

// ReferencesImage reports whether any image block points at imageID.
func (r *BlockRepository) ReferencesImage(imageID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, byID := range r.blocks {
		for _, block := range byID {
			if c, ok := block.Content.(model.ImageContent); ok && c.ImageID == imageID {
				return true
			}
		}
	}
	return false
}

func (r *BlockRepository) Checkpoint() func() {
	r.mu.RLock()
	saved := make(map[string]map[string]*model.Block, len(r.blocks))
	for postID, byID := range r.blocks {
		cp := make(map[string]*model.Block, len(byID))
		for id, block := range byID {
			b := *block
			cp[id] = &b
		}
		saved[postID] = cp
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		r.blocks = saved
		r.mu.Unlock()
	}
}
