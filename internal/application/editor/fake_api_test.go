package editor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	model "noders-content-service/internal/domain/models"
)

type fakeAPI struct {
	mu      sync.Mutex
	blocks  []model.Block
	nextID  int
	calls   []string
	failOn  map[string]error
	failFn  func(call string) error
	blockOn map[string]chan struct{}
}

func newFakeAPI(blocks ...model.Block) *fakeAPI {
	return &fakeAPI{
		blocks:  blocks,
		failOn:  make(map[string]error),
		blockOn: make(map[string]chan struct{}),
	}
}

func (f *fakeAPI) record(call string) (chan struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.failFn != nil {
		if err := f.failFn(call); err != nil {
			return f.blockOn[call], err
		}
	}
	return f.blockOn[call], f.failOn[call]
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) ListBlocks(ctx context.Context, postID string) ([]model.Block, error) {
	if _, err := f.record("list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Block(nil), f.blocks...), nil
}

func (f *fakeAPI) CreateBlock(ctx context.Context, postID string, t model.BlockType, content model.Content, orderIndex int) (*model.Block, error) {
	wait, err := f.record("create")
	if wait != nil {
		<-wait
	}
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Date(2025, 1, 1, 0, 0, f.nextID, 0, time.UTC)
	return &model.Block{
		ID:         fmt.Sprintf("srv-%d", f.nextID),
		PostID:     postID,
		Type:       t,
		Content:    content,
		OrderIndex: orderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (f *fakeAPI) UpdateBlock(ctx context.Context, postID, blockID string, content model.Content) (*model.Block, error) {
	wait, err := f.record("update:" + blockID)
	if wait != nil {
		<-wait
	}
	if err != nil {
		return nil, err
	}
	return &model.Block{
		ID:        blockID,
		PostID:    postID,
		Type:      content.BlockType(),
		Content:   content,
		UpdatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeAPI) DeleteBlock(ctx context.Context, postID, blockID string) error {
	wait, err := f.record("delete:" + blockID)
	if wait != nil {
		<-wait
	}
	return err
}

type staticConfirmer struct {
	answer bool
	asked  int
}

func (c *staticConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	c.asked++
	return c.answer, nil
}

func textBlock(id string, index int, words string) model.Block {
	return model.Block{
		ID:         id,
		PostID:     "post-1",
		Type:       model.BlockTypeText,
		Content:    model.TextContent{HTML: "<p>" + words + "</p>", WordCount: len(strings.Fields(words))},
		OrderIndex: index,
	}
}

func quoteBlock(id string, index int, quote string) model.Block {
	return model.Block{
		ID:         id,
		PostID:     "post-1",
		Type:       model.BlockTypeQuote,
		Content:    model.QuoteContent{Quote: quote},
		OrderIndex: index,
	}
}

func imageBlock(id string, index int) model.Block {
	return model.Block{
		ID:         id,
		PostID:     "post-1",
		Type:       model.BlockTypeImage,
		Content:    model.ImageContent{ImageID: "img-" + id},
		OrderIndex: index,
	}
}

func loadedStore(blocks ...model.Block) *Store {
	store := NewStore("post-1")
	store.Dispatch(Loaded{Blocks: blocks})
	return store
}
