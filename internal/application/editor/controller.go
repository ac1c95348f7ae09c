package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	"noders-content-service/internal/domain/rules"

	"github.com/google/uuid"
)

const networkFailureMessage = "Could not reach the server. Please try again."

// BlockAPI is the network side of the block endpoints.
type BlockAPI interface {
	ListBlocks(ctx context.Context, postID string) ([]model.Block, error)
	CreateBlock(ctx context.Context, postID string, t model.BlockType, content model.Content, orderIndex int) (*model.Block, error)
	UpdateBlock(ctx context.Context, postID, blockID string, content model.Content) (*model.Block, error)
	DeleteBlock(ctx context.Context, postID, blockID string) error
}

// Confirmer asks the user before a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// RequestError is a response the server answered with success=false.
type RequestError struct {
	Status int
	Reason string
}

func (e *RequestError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Reason
}

type Controller struct {
	store     *Store
	api       BlockAPI
	confirmer Confirmer
	newID     func() string
	now       func() time.Time
}

type Option func(*Controller)

func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(c *Controller) { c.now = fn }
}

func NewController(store *Store, api BlockAPI, confirmer Confirmer, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		api:       api,
		confirmer: confirmer,
		newID:     func() string { return model.TempIDPrefix + uuid.NewString() },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Load(ctx context.Context) error {
	postID := c.store.Snapshot().PostID
	blocks, err := c.api.ListBlocks(ctx, postID)
	if err != nil {
		c.store.Dispatch(ShowNotice{Notice: failureNotice(err)})
		return err
	}
	c.store.Dispatch(Loaded{Blocks: blocks})
	return nil
}

// Add validates against the published blocks, appends a pending block and
// replaces it with the server's block once the create request succeeds.
// On failure the pending block is removed and the add form reopens with
// the submitted content.
func (c *Controller) Add(ctx context.Context, t model.BlockType, content model.Content) (*model.Block, error) {
	snap := c.store.Snapshot()
	if err := rules.ValidateAppend(snap.Blocks, t, content); err != nil {
		c.store.Dispatch(ShowNotice{Notice: Notice{Level: NoticeError, Message: err.Error()}})
		return nil, err
	}

	now := c.now().UTC()
	pending := model.Block{
		ID:         c.newID(),
		PostID:     snap.PostID,
		Type:       t,
		Content:    content,
		OrderIndex: len(snap.Blocks),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	published := c.store.Dispatch(AddPending{Block: pending})
	if _, _, ok := published.Find(pending.ID); !ok {
		// Another add was published between the snapshot and the dispatch.
		err := rules.ValidateAppend(published.Blocks, t, content)
		if err == nil {
			err = custom_errors.ErrBlockCreateFailed
		}
		return nil, err
	}

	created, err := c.api.CreateBlock(ctx, snap.PostID, t, content, pending.OrderIndex)
	if err == nil && created == nil {
		err = &RequestError{Reason: custom_errors.ErrBlockCreateFailed.Error()}
	}
	if err != nil {
		c.store.Dispatch(AddFailed{TempID: pending.ID, Type: t, Draft: content, Notice: failureNotice(err)})
		return nil, err
	}

	c.store.Dispatch(AddConfirmed{TempID: pending.ID, Block: *created})
	return created, nil
}

// Update replaces a block's content optimistically and restores the
// original block if the request fails.
func (c *Controller) Update(ctx context.Context, blockID string, content model.Content) (*model.Block, error) {
	snap := c.store.Snapshot()
	original, _, ok := snap.Find(blockID)
	if !ok {
		return nil, custom_errors.ErrBlockNotFound
	}
	if original.IsPending() {
		return nil, custom_errors.ErrBlockPending
	}
	if err := rules.ValidateContent(original.Type, content); err != nil {
		c.store.Dispatch(ShowNotice{Notice: Notice{Level: NoticeError, Message: err.Error()}})
		return nil, err
	}

	c.store.Dispatch(UpdatePending{BlockID: blockID, Content: content, At: c.now().UTC()})

	updated, err := c.api.UpdateBlock(ctx, snap.PostID, blockID, content)
	if err == nil && updated == nil {
		err = &RequestError{Reason: custom_errors.ErrBlockUpdateFailed.Error()}
	}
	if err != nil {
		c.store.Dispatch(UpdateFailed{Original: original, Notice: failureNotice(err)})
		return nil, err
	}

	c.store.Dispatch(UpdateConfirmed{Block: *updated, Notice: &Notice{Level: NoticeInfo, Message: "Block updated."}})
	return updated, nil
}

// Delete asks for confirmation, removes the block optimistically and puts
// it back at its position if the request fails. A declined confirmation
// returns nil and changes nothing. If the restored collection breaks the
// adjacency rule the blocks are reloaded from the server.
func (c *Controller) Delete(ctx context.Context, blockID string) error {
	snap := c.store.Snapshot()
	block, _, ok := snap.Find(blockID)
	if !ok {
		return custom_errors.ErrBlockNotFound
	}
	if block.IsPending() {
		return custom_errors.ErrBlockPending
	}
	if err := rules.ValidateRemoval(snap.Blocks, blockID); err != nil {
		c.store.Dispatch(ShowNotice{Notice: Notice{Level: NoticeError, Message: err.Error()}})
		return err
	}

	if c.confirmer == nil {
		return custom_errors.ErrConfirmationRequired
	}
	confirmed, err := c.confirmer.Confirm(ctx, fmt.Sprintf("Delete this %s block? This cannot be undone.", block.Type))
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	// Capture again: the collection may have changed while the user decided.
	snap = c.store.Snapshot()
	block, index, ok := snap.Find(blockID)
	if !ok {
		return nil
	}
	c.store.Dispatch(DeletePending{BlockID: blockID})

	if err := c.api.DeleteBlock(ctx, snap.PostID, blockID); err != nil {
		c.store.Dispatch(DeleteFailed{Block: block, Index: index, Notice: failureNotice(err)})
		if c.store.Snapshot().Stale {
			_ = c.Load(ctx)
		}
		return err
	}

	c.store.Dispatch(DeleteConfirmed{BlockID: blockID, Notice: &Notice{Level: NoticeInfo, Message: "Block deleted."}})
	return nil
}

func failureNotice(err error) Notice {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Reason != "" {
		return Notice{Level: NoticeError, Message: reqErr.Reason}
	}
	return Notice{Level: NoticeError, Message: networkFailureMessage}
}
