package editor

import (
	"time"

	model "noders-content-service/internal/domain/models"
)

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel
	Message string
}

// Form is the single in-progress add slot. Draft keeps the user's payload so
// a failed add can reopen the form with it.
type Form struct {
	Type  model.BlockType
	Draft model.Content
}

// State is the published view of one post's blocks. Blocks are kept in
// order_index order with contiguous indices.
type State struct {
	PostID string
	Blocks []model.Block
	Form   *Form
	Notice *Notice

	// Stale is set when a rollback could not rebuild a valid collection
	// locally. Loaded clears it.
	Stale bool
}

func (s State) clone() State {
	out := s
	out.Blocks = append([]model.Block(nil), s.Blocks...)
	if s.Form != nil {
		f := *s.Form
		out.Form = &f
	}
	if s.Notice != nil {
		n := *s.Notice
		out.Notice = &n
	}
	return out
}

// Find returns the block with id and its position.
func (s State) Find(id string) (model.Block, int, bool) {
	for i, b := range s.Blocks {
		if b.ID == id {
			return b, i, true
		}
	}
	return model.Block{}, -1, false
}

type Action interface {
	apply(State) State
}

type Loaded struct {
	Blocks []model.Block
}

type OpenForm struct {
	Type  model.BlockType
	Draft model.Content
}

type CloseForm struct{}

type ShowNotice struct {
	Notice Notice
}

type DismissNotice struct{}

type AddPending struct {
	Block model.Block
}

type AddConfirmed struct {
	TempID string
	Block  model.Block
}

type AddFailed struct {
	TempID string
	Type   model.BlockType
	Draft  model.Content
	Notice Notice
}

type UpdatePending struct {
	BlockID string
	Content model.Content
	At      time.Time
}

type UpdateConfirmed struct {
	Block  model.Block
	Notice *Notice
}

type UpdateFailed struct {
	Original model.Block
	Notice   Notice
}

type DeletePending struct {
	BlockID string
}

type DeleteConfirmed struct {
	BlockID string
	Notice  *Notice
}

type DeleteFailed struct {
	Block  model.Block
	Index  int
	Notice Notice
}
