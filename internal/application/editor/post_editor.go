package editor

import (
	"context"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
)

// PostEditor owns the block collection of one post and its single add slot.
type PostEditor struct {
	store *Store
	ctrl  *Controller
}

func NewPostEditor(postID string, api BlockAPI, confirmer Confirmer, opts ...Option) *PostEditor {
	store := NewStore(postID)
	return &PostEditor{
		store: store,
		ctrl:  NewController(store, api, confirmer, opts...),
	}
}

func (e *PostEditor) Load(ctx context.Context) error {
	return e.ctrl.Load(ctx)
}

func (e *PostEditor) State() State {
	return e.store.Snapshot()
}

func (e *PostEditor) Subscribe(fn func(State)) func() {
	return e.store.Subscribe(fn)
}

func (e *PostEditor) Blocks() []model.Block {
	return e.store.Snapshot().Blocks
}

func (e *PostEditor) Counts() model.BlockCounts {
	return model.CountBlocks(e.store.Snapshot().Blocks)
}

// CanAdd reports whether the add control for t is enabled, which depends
// only on the ceilings.
func (e *PostEditor) CanAdd(t model.BlockType) bool {
	if t.IsValid() != nil {
		return false
	}
	counts := e.Counts()
	if counts.Total >= model.MaxBlocksPerPost {
		return false
	}
	return t != model.BlockTypeImage || counts.Images < model.MaxImageBlocksPerPost
}

// OpenAdd opens the add form for t, replacing any other open form.
func (e *PostEditor) OpenAdd(t model.BlockType) (Draft, error) {
	if !e.CanAdd(t) {
		if t.IsValid() != nil {
			return nil, custom_errors.ErrInvalidBlockType
		}
		if t == model.BlockTypeImage && e.Counts().Total < model.MaxBlocksPerPost {
			return nil, custom_errors.ErrImageLimitReached
		}
		return nil, custom_errors.ErrBlockLimitReached
	}
	e.store.Dispatch(OpenForm{Type: t})
	return NewDraft(t)
}

// Form returns the open add form with a draft seeded from anything the user
// already submitted.
func (e *PostEditor) Form() (Draft, bool) {
	form := e.store.Snapshot().Form
	if form == nil {
		return nil, false
	}
	draft, err := DraftFromContent(form.Type, form.Draft)
	if err != nil {
		return nil, false
	}
	return draft, true
}

func (e *PostEditor) CancelAdd() {
	e.store.Dispatch(CloseForm{})
}

func (e *PostEditor) SubmitAdd(ctx context.Context, draft Draft) (*model.Block, error) {
	form := e.store.Snapshot().Form
	if form == nil || draft == nil || form.Type != draft.Type() {
		return nil, custom_errors.ErrAddFormClosed
	}
	return e.ctrl.Add(ctx, draft.Type(), draft.Content())
}

func (e *PostEditor) Edit(ctx context.Context, blockID string, draft Draft) (*model.Block, error) {
	if draft == nil {
		return nil, custom_errors.ErrInvalidInput
	}
	return e.ctrl.Update(ctx, blockID, draft.Content())
}

func (e *PostEditor) Remove(ctx context.Context, blockID string) error {
	return e.ctrl.Delete(ctx, blockID)
}

func (e *PostEditor) DismissNotice() {
	e.store.Dispatch(DismissNotice{})
}
